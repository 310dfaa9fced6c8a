package model

import "time"

// Event is a row in the upstream activity timeline. Recording one is
// best-effort; the timeline is read by the upstream web UI, not by us.
type Event struct {
	ID            ID        `gorm:"column:id;primaryKey"`
	AccountID     ID        `gorm:"column:account_id"`
	BoardID       ID        `gorm:"column:board_id"`
	EventableID   ID        `gorm:"column:eventable_id"`
	EventableType string    `gorm:"column:eventable_type"`
	CreatorID     ID        `gorm:"column:creator_id"`
	Action        string    `gorm:"column:action"`
	Particulars   string    `gorm:"column:particulars"` // JSON
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (Event) TableName() string { return "events" }

// Actions the upstream timeline understands.
const (
	EventCardCreated       = "card_created"
	EventCardUpdated       = "card_updated"
	EventCardClosed        = "card_closed"
	EventCardReopened      = "card_reopened"
	EventCardPostponed     = "card_not_now"
	EventCardColumnChanged = "card_column_changed"
	EventCommentCreated    = "comment_created"
)
