// Package usecase holds one operation per user intent. Each operation
// validates input, resolves identifiers through its store ports, runs the
// domain transition, and returns a transport-neutral view or a typed error.
// Nothing here knows about chat formatting or keyboards.
package usecase

import (
	"context"

	"fizzybot/internal/model"
)

// Actor is the immutable identity every operation runs as, fixed at startup
// from configuration.
type Actor struct {
	AccountID model.ID
	UserID    model.ID
}

// Store ports. The GORM repositories implement these; tests mock them.

type CardStore interface {
	FindByNumber(ctx context.Context, accountID model.ID, number int64) (*model.Card, error)
	ListAssigned(ctx context.Context, accountID, userID model.ID) ([]model.Card, error)
	ListByBoard(ctx context.Context, accountID, boardID model.ID) ([]model.Card, error)
	Create(ctx context.Context, accountID model.ID, draft model.CardDraft) (*model.Card, error)
	UpdateStatus(ctx context.Context, accountID, cardID model.ID, action model.Action, actorID model.ID) (*model.Card, error)
	Move(ctx context.Context, accountID, cardID, columnID model.ID) (*model.Card, error)
	Rename(ctx context.Context, accountID, cardID model.ID, title string) (*model.Card, error)
}

type BoardStore interface {
	List(ctx context.Context, accountID model.ID) ([]model.Board, error)
	GetByID(ctx context.Context, accountID, id model.ID) (*model.Board, error)
	GetByName(ctx context.Context, accountID model.ID, name string) (*model.Board, error)
	Columns(ctx context.Context, accountID, boardID model.ID) ([]model.Column, error)
}

type CommentStore interface {
	Create(ctx context.Context, accountID, cardID, creatorID model.ID, body string) (*model.Comment, error)
	CountByCard(ctx context.Context, accountID, cardID model.ID) (int64, error)
	ListByCard(ctx context.Context, accountID, cardID model.ID, limit int) ([]model.Comment, error)
}

type EventStore interface {
	Record(ctx context.Context, accountID model.ID, event model.Event) error
}

type UserStore interface {
	ListByAccount(ctx context.Context, accountID model.ID) ([]model.User, error)
}

// Service wires the ports together. One instance serves every chat update.
type Service struct {
	cards    CardStore
	boards   BoardStore
	comments CommentStore
	events   EventStore
	users    UserStore
	baseURL  string
}

func New(cards CardStore, boards BoardStore, comments CommentStore, events EventStore, users UserStore, baseURL string) *Service {
	return &Service{
		cards:    cards,
		boards:   boards,
		comments: comments,
		events:   events,
		users:    users,
		baseURL:  baseURL,
	}
}
