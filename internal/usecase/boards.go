package usecase

import (
	"context"

	"fizzybot/internal/model"
)

// BoardCards is the projection rendered by /board: the board and its active
// cards in column order.
type BoardCards struct {
	Board model.Board
	Cards []model.Card
}

// ListBoards returns the account's boards.
func (s *Service) ListBoards(ctx context.Context, actor Actor) ([]model.Board, error) {
	return s.boards.List(ctx, actor.AccountID)
}

// ListBoardCards resolves a board by name and returns its active cards.
func (s *Service) ListBoardCards(ctx context.Context, actor Actor, boardName string) (*BoardCards, error) {
	board, err := s.boards.GetByName(ctx, actor.AccountID, boardName)
	if err != nil {
		return nil, err
	}

	cards, err := s.cards.ListByBoard(ctx, actor.AccountID, board.ID)
	if err != nil {
		return nil, err
	}

	return &BoardCards{Board: *board, Cards: cards}, nil
}

// ListAssigned returns the actor's active cards, most recently active first.
func (s *Service) ListAssigned(ctx context.Context, actor Actor) ([]model.Card, error) {
	return s.cards.ListAssigned(ctx, actor.AccountID, actor.UserID)
}
