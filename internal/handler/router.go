package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"fizzybot/internal/metrics"
	"fizzybot/internal/model"
	"fizzybot/internal/repository"
	"fizzybot/internal/session"
	"fizzybot/internal/usecase"
)

// Orchestrator is the slice of the use-case layer the router drives.
// *usecase.Service satisfies it; tests mock it.
type Orchestrator interface {
	CreateCard(ctx context.Context, actor usecase.Actor, boardID model.ID, title string) (*model.Card, error)
	CloseCard(ctx context.Context, actor usecase.Actor, number int64) (*model.Card, error)
	PostponeCard(ctx context.Context, actor usecase.Actor, number int64) (*model.Card, error)
	ReopenCard(ctx context.Context, actor usecase.Actor, number int64) (*model.Card, error)
	MoveCard(ctx context.Context, actor usecase.Actor, number int64, columnID model.ID) (*model.Card, error)
	AddComment(ctx context.Context, actor usecase.Actor, number int64, text string) (*model.Comment, error)
	ShowCard(ctx context.Context, actor usecase.Actor, number int64) (*usecase.CardDetail, error)
	ListAssigned(ctx context.Context, actor usecase.Actor) ([]model.Card, error)
	ListBoards(ctx context.Context, actor usecase.Actor) ([]model.Board, error)
	ListBoardCards(ctx context.Context, actor usecase.Actor, boardName string) (*usecase.BoardCards, error)
}

// ErrUnauthorized is returned (pre-formatted, never from storage) when the
// user id is not on the allow list.
var ErrUnauthorized = errors.New("unauthorized")

// Router gates, parses, and dispatches chat traffic. One instance serves
// all chats.
type Router struct {
	uc             Orchestrator
	sessions       *session.Manager
	actor          usecase.Actor
	defaultBoardID model.ID
	allowed        map[int64]bool
}

func NewRouter(uc Orchestrator, sessions *session.Manager, actor usecase.Actor, defaultBoardID model.ID, allowedUserIDs []int64) *Router {
	allowed := make(map[int64]bool, len(allowedUserIDs))
	for _, id := range allowedUserIDs {
		allowed[id] = true
	}
	return &Router{
		uc:             uc,
		sessions:       sessions,
		actor:          actor,
		defaultBoardID: defaultBoardID,
		allowed:        allowed,
	}
}

// Handle runs one chat command. The allow-list check comes before anything
// else: an unauthorized user triggers no session read and no storage call.
func (r *Router) Handle(ctx context.Context, req Request) Result {
	metrics.CommandsTotal.WithLabelValues(req.Command).Inc()

	if !r.allowed[req.UserID] {
		log.WithField("user_id", req.UserID).Warn("rejected unauthorized user")
		metrics.ResultsTotal.WithLabelValues("unauthorized").Inc()
		return Result{Text: "Sorry, you are not authorized to use this bot."}
	}

	res, err := r.dispatch(ctx, req)
	if err != nil {
		return r.fail(req.Command, err)
	}
	metrics.ResultsTotal.WithLabelValues("ok").Inc()
	return res
}

func (r *Router) dispatch(ctx context.Context, req Request) (Result, error) {
	args := strings.TrimSpace(req.Args)

	switch req.Command {
	case "start":
		return Result{Text: welcomeText}, nil

	case "help":
		return Result{Text: helpText}, nil

	case "me", "mycards":
		cards, err := r.uc.ListAssigned(ctx, r.actor)
		if err != nil {
			return Result{}, err
		}
		return Result{Text: formatCardList("Your cards:", cards)}, nil

	case "boards":
		boards, err := r.uc.ListBoards(ctx, r.actor)
		if err != nil {
			return Result{}, err
		}
		return Result{Text: formatBoards(boards)}, nil

	case "board":
		if args == "" {
			return Result{Text: "Usage: /board <name>"}, nil
		}
		view, err := r.uc.ListBoardCards(ctx, r.actor, args)
		if err != nil {
			return Result{}, err
		}
		return Result{Text: formatCardList("Cards in "+view.Board.Name+":", view.Cards)}, nil

	case "card":
		number, err := parseNumber(args)
		if err != nil {
			return Result{Text: "Usage: /card <number>"}, nil
		}
		return r.showCard(ctx, req.ChatID, number)

	case "create":
		if args == "" {
			return Result{Text: "Usage: /create <title>"}, nil
		}
		card, err := r.uc.CreateCard(ctx, r.actor, r.defaultBoardID, args)
		if err != nil {
			return Result{}, err
		}
		return Result{Text: "📝 Created " + card.FormattedNumber() + " " + card.Title}, nil

	case "close":
		number, err := parseNumber(args)
		if err != nil {
			return Result{Text: "Usage: /close <number>"}, nil
		}
		card, err := r.uc.CloseCard(ctx, r.actor, number)
		if err != nil {
			return Result{}, err
		}
		return Result{Text: "✅ Closed " + card.FormattedNumber() + " " + card.Title}, nil

	case "reopen":
		number, err := parseNumber(args)
		if err != nil {
			return Result{Text: "Usage: /reopen <number>"}, nil
		}
		card, err := r.uc.ReopenCard(ctx, r.actor, number)
		if err != nil {
			return Result{}, err
		}
		return Result{Text: "🔄 Reopened " + card.FormattedNumber() + " " + card.Title}, nil

	case "comment":
		number, text, err := parseComment(args)
		if err != nil {
			return Result{Text: "Usage: /comment <number> <text>"}, nil
		}
		if _, err := r.uc.AddComment(ctx, r.actor, number, text); err != nil {
			return Result{}, err
		}
		return Result{Text: "💬 Comment added to #" + strconv.FormatInt(number, 10)}, nil

	default:
		return Result{Text: "Unknown command. Type /help for the list."}, nil
	}
}

// showCard renders the detail view and opens a pending interaction so the
// action keyboard's buttons stay bound to this conversation turn.
func (r *Router) showCard(ctx context.Context, chatID int64, number int64) (Result, error) {
	detail, err := r.uc.ShowCard(ctx, r.actor, number)
	if err != nil {
		return Result{}, err
	}
	pending := r.sessions.Begin(chatID, cbMove, number)
	return Result{
		Text:     formatCard(detail),
		Keyboard: cardActionsKeyboard(&detail.Card, pending.Token),
	}, nil
}

func (r *Router) fail(command string, err error) Result {
	outcome := outcomeLabel(err)
	metrics.ResultsTotal.WithLabelValues(outcome).Inc()
	entry := log.WithField("command", command).WithError(err)
	if outcome == "storage_error" {
		entry.Error("command failed")
	} else {
		entry.Debug("command rejected")
	}
	return Result{Text: formatError(err)}
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, model.ErrValidation):
		return "validation_error"
	case errors.Is(err, model.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, repository.ErrCardNotFound),
		errors.Is(err, repository.ErrBoardNotFound),
		errors.Is(err, repository.ErrColumnNotFound):
		return "not_found"
	case errors.Is(err, repository.ErrConcurrentModification):
		return "conflict"
	case errors.Is(err, repository.ErrNumberExhausted):
		return "allocation_exhausted"
	case errors.Is(err, session.ErrStaleInteraction):
		return "stale_interaction"
	default:
		return "storage_error"
	}
}

func parseNumber(args string) (int64, error) {
	return strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(args), "#"), 10, 64)
}

func parseComment(args string) (int64, string, error) {
	parts := strings.SplitN(strings.TrimSpace(args), " ", 2)
	if len(parts) != 2 {
		return 0, "", errors.New("missing comment text")
	}
	number, err := parseNumber(parts[0])
	if err != nil {
		return 0, "", err
	}
	return number, strings.TrimSpace(parts[1]), nil
}

const welcomeText = `Welcome to Fizzy Bot!

I help you manage your Fizzy cards from Telegram.

Quick commands:
/me - Your assigned cards
/boards - List boards
/card 123 - View card #123
/create My new task - Create a card
/close 123 - Close card #123

Type /help for all commands.`

const helpText = `Available commands:

/me - List your assigned cards
/mycards - Same as /me
/boards - List boards
/board <name> - Show cards in a board
/card <number> - Show card details and actions
/create <title> - Create a card on the default board
/close <number> - Close a card
/reopen <number> - Reopen a closed card
/comment <number> <text> - Add a comment`
