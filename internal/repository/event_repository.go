package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fizzybot/internal/model"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Record appends a row to the upstream activity timeline.
func (r *EventRepository) Record(ctx context.Context, accountID model.ID, event model.Event) error {
	event.ID = model.NewID()
	event.AccountID = accountID
	event.CreatedAt = time.Now()
	if event.EventableType == "" {
		event.EventableType = "Card"
	}
	if event.Particulars == "" {
		event.Particulars = "{}"
	}
	return r.db.WithContext(ctx).Create(&event).Error
}
