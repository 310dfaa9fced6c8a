package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fizzybot/internal/model"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) List(ctx context.Context, accountID model.ID) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("name").
		Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) GetByID(ctx context.Context, accountID, id model.ID) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		Take(&board).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	return &board, nil
}

// GetByName matches case-insensitively, the way board names are typed into
// the /board command.
func (r *BoardRepository) GetByName(ctx context.Context, accountID model.ID, name string) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND LOWER(name) = LOWER(?)", accountID, name).
		Take(&board).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	return &board, nil
}

// Columns returns the board's columns in display order. The columns table
// carries no account id; scoping goes through the board row.
func (r *BoardRepository) Columns(ctx context.Context, accountID, boardID model.ID) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).
		Table("columns").
		Select("columns.*").
		Joins("JOIN boards ON boards.id = columns.board_id").
		Where("boards.account_id = ? AND columns.board_id = ?", accountID, boardID).
		Order("columns.position").
		Find(&columns).Error
	return columns, err
}
