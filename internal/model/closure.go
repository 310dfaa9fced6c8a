package model

import "time"

// Closure is the audit record proving a card was closed. At most one live
// row per card; it is written in the same transaction as the status change
// and deleted on reopen.
type Closure struct {
	ID        ID        `gorm:"column:id;primaryKey"`
	AccountID ID        `gorm:"column:account_id"`
	CardID    ID        `gorm:"column:card_id"`
	CreatorID ID        `gorm:"column:creator_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Closure) TableName() string { return "closures" }

// NotNow is the audit record for a postponed card, with the same lifecycle
// rules as Closure.
type NotNow struct {
	ID        ID        `gorm:"column:id;primaryKey"`
	AccountID ID        `gorm:"column:account_id"`
	CardID    ID        `gorm:"column:card_id"`
	CreatorID ID        `gorm:"column:creator_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (NotNow) TableName() string { return "not_nows" }
