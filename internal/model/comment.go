package model

import "time"

type Comment struct {
	ID        ID        `gorm:"column:id;primaryKey"`
	AccountID ID        `gorm:"column:account_id"`
	CardID    ID        `gorm:"column:card_id"`
	CreatorID ID        `gorm:"column:creator_id"`
	Body      string    `gorm:"column:body"`
	CreatedAt time.Time `gorm:"column:created_at"`

	// Display only, resolved from the account's users.
	CreatorName string `gorm:"-"`
}

func (Comment) TableName() string { return "comments" }
