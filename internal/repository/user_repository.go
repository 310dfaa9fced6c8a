package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fizzybot/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, accountID, id model.ID) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ListByAccount(ctx context.Context, accountID model.ID) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("name").
		Find(&users).Error
	return users, err
}
