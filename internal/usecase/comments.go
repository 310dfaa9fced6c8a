package usecase

import (
	"context"
	"fmt"
	"strings"

	"fizzybot/internal/model"
)

// AddComment appends a comment to the card identified by number.
func (s *Service) AddComment(ctx context.Context, actor Actor, number int64, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text must not be empty", model.ErrValidation)
	}

	card, err := s.cards.FindByNumber(ctx, actor.AccountID, number)
	if err != nil {
		return nil, err
	}

	comment, err := s.comments.Create(ctx, actor.AccountID, card.ID, actor.UserID, text)
	if err != nil {
		return nil, err
	}

	s.recordEvent(ctx, actor, card, model.EventCommentCreated, "")
	return comment, nil
}
