package model

import "time"

type Board struct {
	ID        ID        `gorm:"column:id;primaryKey"`
	AccountID ID        `gorm:"column:account_id"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Board) TableName() string { return "boards" }
