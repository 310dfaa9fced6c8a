package handler_test

import (
	"context"
	"fmt"
	"testing"

	"fizzybot/internal/handler"
	"fizzybot/internal/model"
	"fizzybot/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHandleCallback_UnauthorizedUserNeverReachesStorage(t *testing.T) {
	router, uc, sessions := setupRouter()
	pending := sessions.Begin(chatID, "move", 6)

	res := router.HandleCallback(context.Background(), handler.Callback{
		ChatID: chatID, UserID: strangerUser,
		Data: fmt.Sprintf("close:%s:0:", pending.Token),
	})

	assert.Contains(t, res.Text, "not authorized")
	assert.Empty(t, uc.Calls)

	// The pending record survives: the stranger couldn't consume it.
	_, err := sessions.Resolve(chatID, pending.Token)
	assert.NoError(t, err)
}

func TestHandleCallback_MismatchedTokenMutatesNothing(t *testing.T) {
	router, uc, sessions := setupRouter()
	sessions.Begin(chatID, "move", 6)

	res := router.HandleCallback(context.Background(), handler.Callback{
		ChatID: chatID, UserID: allowedUser,
		Data: "close:0123456789abcdef:0:",
	})

	assert.Contains(t, res.Text, "expired")
	assert.Empty(t, uc.Calls, "a stale callback must not reach any use case")
}

func TestHandleCallback_MalformedPayload(t *testing.T) {
	router, uc, _ := setupRouter()

	res := router.HandleCallback(context.Background(), handler.Callback{
		ChatID: chatID, UserID: allowedUser, Data: "garbage",
	})

	assert.Contains(t, res.Text, "expired")
	assert.Empty(t, uc.Calls)
}

func TestHandleCallback_CloseButton(t *testing.T) {
	router, uc, sessions := setupRouter()
	pending := sessions.Begin(chatID, "move", 6)
	closed := &model.Card{Number: 6, Title: "Fix bug", Status: model.StatusClosed}

	uc.On("CloseCard", mock.Anything, mock.Anything, int64(6)).Return(closed, nil)

	res := router.HandleCallback(context.Background(), handler.Callback{
		ChatID: chatID, UserID: allowedUser,
		Data: fmt.Sprintf("close:%s:0:", pending.Token),
	})

	assert.Contains(t, res.Text, "Closed #6")

	// The interaction completed; pressing the same button again is stale.
	res = router.HandleCallback(context.Background(), handler.Callback{
		ChatID: chatID, UserID: allowedUser,
		Data: fmt.Sprintf("close:%s:0:", pending.Token),
	})
	assert.Contains(t, res.Text, "expired")
}

func TestHandleCallback_MoveFlow(t *testing.T) {
	router, uc, sessions := setupRouter()
	pending := sessions.Begin(chatID, "move", 6)

	columnID := model.NewID()
	detail := &usecase.CardDetail{
		Card:    model.Card{ID: model.NewID(), Number: 6, Title: "Fix bug", Status: model.StatusDrafted},
		Columns: []model.Column{{ID: columnID, Name: "Doing"}},
	}
	moved := &model.Card{Number: 6, Title: "Fix bug", Status: model.StatusTriaged}

	uc.On("ShowCard", mock.Anything, mock.Anything, int64(6)).Return(detail, nil)
	uc.On("MoveCard", mock.Anything, mock.Anything, int64(6), columnID).Return(moved, nil)

	// Step 0: the Move button renders the column selector.
	res := router.HandleCallback(context.Background(), handler.Callback{
		ChatID: chatID, UserID: allowedUser,
		Data: fmt.Sprintf("move:%s:0:", pending.Token),
	})
	assert.Contains(t, res.Text, "which column")
	assert.NotNil(t, res.Keyboard)
	assert.Equal(t, "Doing", res.Keyboard.Rows[0][0].Label)

	// Step 1: selecting a column performs the move and completes.
	res = router.HandleCallback(context.Background(), handler.Callback{
		ChatID: chatID, UserID: allowedUser,
		Data: res.Keyboard.Rows[0][0].Data,
	})
	assert.Contains(t, res.Text, "Moved #6")
	uc.AssertExpectations(t)

	_, err := sessions.Resolve(chatID, pending.Token)
	assert.Error(t, err, "interaction must be cleared after completion")
}

func TestHandleCallback_ButtonFromEarlierStepIsStale(t *testing.T) {
	router, uc, sessions := setupRouter()
	pending := sessions.Begin(chatID, "move", 6)

	columnID := model.NewID()
	detail := &usecase.CardDetail{
		Card:    model.Card{ID: model.NewID(), Number: 6, Title: "Fix bug", Status: model.StatusTriaged},
		Columns: []model.Column{{ID: columnID, Name: "Doing"}},
	}
	uc.On("ShowCard", mock.Anything, mock.Anything, int64(6)).Return(detail, nil)

	// Opening the column selector advances the interaction past step 0.
	res := router.HandleCallback(context.Background(), handler.Callback{
		ChatID: chatID, UserID: allowedUser,
		Data: fmt.Sprintf("move:%s:0:", pending.Token),
	})
	assert.NotNil(t, res.Keyboard)

	// The close button on the original card message carries step 0 and the
	// still-valid token; it must not fire anymore.
	res = router.HandleCallback(context.Background(), handler.Callback{
		ChatID: chatID, UserID: allowedUser,
		Data: fmt.Sprintf("close:%s:0:", pending.Token),
	})
	assert.Contains(t, res.Text, "expired")
	uc.AssertNotCalled(t, "CloseCard", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleCallback_Cancel(t *testing.T) {
	router, uc, sessions := setupRouter()
	pending := sessions.Begin(chatID, "move", 6)

	res := router.HandleCallback(context.Background(), handler.Callback{
		ChatID: chatID, UserID: allowedUser,
		Data: fmt.Sprintf("cancel:%s:0:", pending.Token),
	})

	assert.Contains(t, res.Text, "Cancelled")
	assert.Empty(t, uc.Calls)
}
