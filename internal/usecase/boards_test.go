package usecase_test

import (
	"context"
	"testing"

	"fizzybot/internal/model"
	"fizzybot/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListBoardCards_UnknownBoardName(t *testing.T) {
	f := setup()

	f.boards.On("GetByName", mock.Anything, f.actor.AccountID, "nope").
		Return(nil, repository.ErrBoardNotFound)

	_, err := f.svc.ListBoardCards(context.Background(), f.actor, "nope")

	assert.ErrorIs(t, err, repository.ErrBoardNotFound)
	f.cards.AssertNotCalled(t, "ListByBoard", mock.Anything, mock.Anything, mock.Anything)
}

func TestListBoardCards_ReturnsBoardAndCards(t *testing.T) {
	f := setup()
	board := &model.Board{ID: model.NewID(), AccountID: f.actor.AccountID, Name: "Roadmap"}

	f.boards.On("GetByName", mock.Anything, f.actor.AccountID, "roadmap").Return(board, nil)
	f.cards.On("ListByBoard", mock.Anything, f.actor.AccountID, board.ID).
		Return([]model.Card{{Number: 1, Title: "A"}, {Number: 2, Title: "B"}}, nil)

	view, err := f.svc.ListBoardCards(context.Background(), f.actor, "roadmap")

	assert.NoError(t, err)
	assert.Equal(t, "Roadmap", view.Board.Name)
	assert.Len(t, view.Cards, 2)
}

func TestListAssigned_ScopesToActor(t *testing.T) {
	f := setup()

	f.cards.On("ListAssigned", mock.Anything, f.actor.AccountID, f.actor.UserID).
		Return([]model.Card{{Number: 3}}, nil)

	cards, err := f.svc.ListAssigned(context.Background(), f.actor)

	assert.NoError(t, err)
	assert.Len(t, cards, 1)
	f.cards.AssertExpectations(t)
}

func TestAddComment_EmptyTextRejectedBeforeStorage(t *testing.T) {
	f := setup()

	_, err := f.svc.AddComment(context.Background(), f.actor, 6, "  ")

	assert.ErrorIs(t, err, model.ErrValidation)
	f.cards.AssertNotCalled(t, "FindByNumber", mock.Anything, mock.Anything, mock.Anything)
	f.comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddComment_CreatesCommentAndEvent(t *testing.T) {
	f := setup()
	card := &model.Card{ID: model.NewID(), BoardID: model.NewID(), Number: 6}
	comment := &model.Comment{ID: model.NewID(), CardID: card.ID, Body: "looks good"}

	f.cards.On("FindByNumber", mock.Anything, f.actor.AccountID, int64(6)).Return(card, nil)
	f.comments.On("Create", mock.Anything, f.actor.AccountID, card.ID, f.actor.UserID, "looks good").
		Return(comment, nil)
	f.events.On("Record", mock.Anything, f.actor.AccountID, mock.MatchedBy(func(e model.Event) bool {
		return e.Action == model.EventCommentCreated
	})).Return(nil)

	got, err := f.svc.AddComment(context.Background(), f.actor, 6, " looks good ")

	assert.NoError(t, err)
	assert.Equal(t, "looks good", got.Body)
	f.comments.AssertExpectations(t)
}
