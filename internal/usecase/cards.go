package usecase

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"fizzybot/internal/model"
)

// CardDetail is the projection rendered by /card: the card itself, its
// board's columns (for the move keyboard), and the comment trail.
type CardDetail struct {
	Card         model.Card
	Columns      []model.Column
	CommentCount int64
	Recent       []model.Comment
	WebURL       string
}

// recentCommentLimit caps how much of the comment trail the detail view
// loads.
const recentCommentLimit = 3

// CreateCard creates a drafted card on the board, allocating the next
// account-scoped number.
func (s *Service) CreateCard(ctx context.Context, actor Actor, boardID model.ID, title string) (*model.Card, error) {
	if err := model.ValidateTitle(title); err != nil {
		return nil, err
	}

	board, err := s.boards.GetByID(ctx, actor.AccountID, boardID)
	if err != nil {
		return nil, err
	}

	card, err := s.cards.Create(ctx, actor.AccountID, model.CardDraft{
		BoardID:   board.ID,
		CreatorID: actor.UserID,
		Title:     title,
	})
	if err != nil {
		return nil, err
	}

	s.recordEvent(ctx, actor, card, model.EventCardCreated, "")
	return card, nil
}

// CloseCard closes the card by number.
func (s *Service) CloseCard(ctx context.Context, actor Actor, number int64) (*model.Card, error) {
	return s.applyAction(ctx, actor, number, model.ActionClose, model.EventCardClosed)
}

// PostponeCard moves the card to the not-now pile.
func (s *Service) PostponeCard(ctx context.Context, actor Actor, number int64) (*model.Card, error) {
	return s.applyAction(ctx, actor, number, model.ActionPostpone, model.EventCardPostponed)
}

// ReopenCard brings a closed or postponed card back to triaged.
func (s *Service) ReopenCard(ctx context.Context, actor Actor, number int64) (*model.Card, error) {
	return s.applyAction(ctx, actor, number, model.ActionReopen, model.EventCardReopened)
}

func (s *Service) applyAction(ctx context.Context, actor Actor, number int64, action model.Action, eventAction string) (*model.Card, error) {
	card, err := s.cards.FindByNumber(ctx, actor.AccountID, number)
	if err != nil {
		return nil, err
	}

	updated, err := s.cards.UpdateStatus(ctx, actor.AccountID, card.ID, action, actor.UserID)
	if err != nil {
		return nil, err
	}

	s.recordEvent(ctx, actor, updated, eventAction, "")
	return updated, nil
}

// MoveCard places the card on a column of its own board.
func (s *Service) MoveCard(ctx context.Context, actor Actor, number int64, columnID model.ID) (*model.Card, error) {
	card, err := s.cards.FindByNumber(ctx, actor.AccountID, number)
	if err != nil {
		return nil, err
	}

	columns, err := s.boards.Columns(ctx, actor.AccountID, card.BoardID)
	if err != nil {
		return nil, err
	}
	if !columnOnBoard(columns, columnID) {
		return nil, fmt.Errorf("%w: column is not on this card's board", model.ErrValidation)
	}

	updated, err := s.cards.Move(ctx, actor.AccountID, card.ID, columnID)
	if err != nil {
		return nil, err
	}

	s.recordEvent(ctx, actor, updated, model.EventCardColumnChanged,
		fmt.Sprintf(`{"column_id":%q}`, columnID))
	return updated, nil
}

// RenameCard retitles the card.
func (s *Service) RenameCard(ctx context.Context, actor Actor, number int64, title string) (*model.Card, error) {
	card, err := s.cards.FindByNumber(ctx, actor.AccountID, number)
	if err != nil {
		return nil, err
	}

	updated, err := s.cards.Rename(ctx, actor.AccountID, card.ID, title)
	if err != nil {
		return nil, err
	}

	s.recordEvent(ctx, actor, updated, model.EventCardUpdated, "")
	return updated, nil
}

// ShowCard builds the detail view for /card.
func (s *Service) ShowCard(ctx context.Context, actor Actor, number int64) (*CardDetail, error) {
	card, err := s.cards.FindByNumber(ctx, actor.AccountID, number)
	if err != nil {
		return nil, err
	}

	columns, err := s.boards.Columns(ctx, actor.AccountID, card.BoardID)
	if err != nil {
		return nil, err
	}

	count, err := s.comments.CountByCard(ctx, actor.AccountID, card.ID)
	if err != nil {
		return nil, err
	}

	var recent []model.Comment
	if count > 0 {
		if recent, err = s.comments.ListByCard(ctx, actor.AccountID, card.ID, recentCommentLimit); err != nil {
			return nil, err
		}
		users, err := s.users.ListByAccount(ctx, actor.AccountID)
		if err != nil {
			return nil, err
		}
		names := make(map[model.ID]string, len(users))
		for _, u := range users {
			names[u.ID] = u.Name
		}
		for i := range recent {
			recent[i].CreatorName = names[recent[i].CreatorID]
		}
	}

	return &CardDetail{
		Card:         *card,
		Columns:      columns,
		CommentCount: count,
		Recent:       recent,
		WebURL:       card.WebURL(s.baseURL),
	}, nil
}

// recordEvent appends to the upstream activity timeline. Best-effort: the
// mutation already committed, a missing timeline row is not worth failing
// the user's command over.
func (s *Service) recordEvent(ctx context.Context, actor Actor, card *model.Card, action, particulars string) {
	err := s.events.Record(ctx, actor.AccountID, model.Event{
		BoardID:     card.BoardID,
		EventableID: card.ID,
		CreatorID:   actor.UserID,
		Action:      action,
		Particulars: particulars,
	})
	if err != nil {
		log.WithError(err).WithField("action", action).Warn("failed to record event")
	}
}

func columnOnBoard(columns []model.Column, columnID model.ID) bool {
	for _, c := range columns {
		if c.ID == columnID {
			return true
		}
	}
	return false
}
