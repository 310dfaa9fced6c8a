package handler

import (
	"context"

	log "github.com/sirupsen/logrus"

	"fizzybot/internal/metrics"
	"fizzybot/internal/model"
	"fizzybot/internal/session"
)

// HandleCallback runs one keyboard selection. The same allow-list gate as
// Handle runs first; then the payload's correlation token must match the
// chat's pending interaction or nothing happens.
func (r *Router) HandleCallback(ctx context.Context, cb Callback) Result {
	if !r.allowed[cb.UserID] {
		log.WithField("user_id", cb.UserID).Warn("rejected unauthorized callback")
		metrics.ResultsTotal.WithLabelValues("unauthorized").Inc()
		return Result{Text: "Sorry, you are not authorized to use this bot.", Alert: true}
	}

	data, err := parseCallback(cb.Data)
	if err != nil {
		return r.failCallback("malformed", err)
	}
	metrics.CallbacksTotal.WithLabelValues(data.Action).Inc()

	pending, err := r.sessions.Resolve(cb.ChatID, data.Token)
	if err != nil {
		return r.failCallback(data.Action, err)
	}
	// A button from an earlier step of the same interaction is just as
	// stale as one from an earlier interaction.
	if data.Step != pending.Step {
		return r.failCallback(data.Action, session.ErrStaleInteraction)
	}

	switch data.Action {
	case cbCancel:
		r.sessions.Cancel(cb.ChatID)
		return Result{Text: "Cancelled.", Alert: true}

	case cbClose:
		card, err := r.uc.CloseCard(ctx, r.actor, pending.CardNumber)
		if err != nil {
			return r.failCallback(data.Action, err)
		}
		r.sessions.Complete(cb.ChatID)
		return Result{Text: "✅ Closed " + card.FormattedNumber() + " " + card.Title}

	case cbPostpone:
		card, err := r.uc.PostponeCard(ctx, r.actor, pending.CardNumber)
		if err != nil {
			return r.failCallback(data.Action, err)
		}
		r.sessions.Complete(cb.ChatID)
		return Result{Text: "⏸ Postponed " + card.FormattedNumber() + " " + card.Title}

	case cbReopen:
		card, err := r.uc.ReopenCard(ctx, r.actor, pending.CardNumber)
		if err != nil {
			return r.failCallback(data.Action, err)
		}
		r.sessions.Complete(cb.ChatID)
		return Result{Text: "🔄 Reopened " + card.FormattedNumber() + " " + card.Title}

	case cbMove:
		// Step 0 -> 1: render the column selector for the card's board.
		detail, err := r.uc.ShowCard(ctx, r.actor, pending.CardNumber)
		if err != nil {
			return r.failCallback(data.Action, err)
		}
		if _, err := r.sessions.Advance(cb.ChatID, data.Token, "card", detail.Card.ID.String()); err != nil {
			return r.failCallback(data.Action, err)
		}
		return Result{
			Text:     "Move " + detail.Card.FormattedNumber() + " to which column?",
			Keyboard: columnSelectorKeyboard(detail.Columns, data.Token),
		}

	case cbColumn:
		columnID, err := model.ParseID(data.Choice)
		if err != nil {
			return r.failCallback(data.Action, session.ErrStaleInteraction)
		}
		card, err := r.uc.MoveCard(ctx, r.actor, pending.CardNumber, columnID)
		if err != nil {
			return r.failCallback(data.Action, err)
		}
		r.sessions.Complete(cb.ChatID)
		return Result{Text: "➡️ Moved " + card.FormattedNumber() + " " + card.Title}

	default:
		return r.failCallback(data.Action, session.ErrStaleInteraction)
	}
}

func (r *Router) failCallback(action string, err error) Result {
	outcome := outcomeLabel(err)
	metrics.ResultsTotal.WithLabelValues(outcome).Inc()
	log.WithField("callback", action).WithError(err).Debug("callback rejected")
	return Result{Text: formatError(err), Alert: true}
}
