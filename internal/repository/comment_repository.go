package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fizzybot/internal/model"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a comment and bumps the card's last_active_at the way the
// upstream application does when someone comments through its UI.
func (r *CommentRepository) Create(ctx context.Context, accountID, cardID, creatorID model.ID, body string) (*model.Comment, error) {
	now := time.Now()
	comment := model.Comment{
		ID:        model.NewID(),
		AccountID: accountID,
		CardID:    cardID,
		CreatorID: creatorID,
		Body:      body,
		CreatedAt: now,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		res := tx.Exec(
			"UPDATE cards SET last_active_at = ?, updated_at = ? WHERE account_id = ? AND id = ?",
			now, now, accountID, cardID,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCardNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) CountByCard(ctx context.Context, accountID, cardID model.ID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("account_id = ? AND card_id = ?", accountID, cardID).
		Count(&count).Error
	return count, err
}

func (r *CommentRepository) ListByCard(ctx context.Context, accountID, cardID model.ID, limit int) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND card_id = ?", accountID, cardID).
		Order("created_at DESC").
		Limit(limit).
		Find(&comments).Error
	return comments, err
}
