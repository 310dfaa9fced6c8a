package model

import "fmt"

// CardStatus is the card workflow state, in the string form the upstream
// application writes to the cards table.
//   - drafted: just created, sitting in the triage area
//   - triaged: placed on a column, actively worked
//   - closed: done
//   - not_now: postponed
type CardStatus string

const (
	StatusDrafted CardStatus = "drafted"
	StatusTriaged CardStatus = "triaged"
	StatusClosed  CardStatus = "closed"
	StatusNotNow  CardStatus = "not_now"

	// statusPublished appears in rows written by older upstream versions.
	// It reads as an active card and is never written back.
	statusPublished CardStatus = "published"
)

// Action is a requested card lifecycle change.
type Action string

const (
	ActionTriage   Action = "triage" // assign to a column
	ActionClose    Action = "close"
	ActionPostpone Action = "postpone"
	ActionReopen   Action = "reopen"
)

// ParseStatus validates a status string read from the database.
func ParseStatus(s string) (CardStatus, error) {
	switch CardStatus(s) {
	case StatusDrafted, StatusTriaged, StatusClosed, StatusNotNow, statusPublished:
		return CardStatus(s), nil
	}
	return "", fmt.Errorf("%w: unknown card status %q", ErrValidation, s)
}

// IsActive reports whether the status is a live, not-terminal state.
func (s CardStatus) IsActive() bool {
	switch s {
	case StatusDrafted, StatusTriaged, statusPublished:
		return true
	}
	return false
}

// DisplayName is the human-readable form used in chat messages.
func (s CardStatus) DisplayName() string {
	switch s {
	case StatusDrafted:
		return "Draft"
	case StatusTriaged, statusPublished:
		return "Active"
	case StatusClosed:
		return "Closed"
	case StatusNotNow:
		return "Postponed"
	}
	return string(s)
}

// Emoji is the status marker used in chat messages.
func (s CardStatus) Emoji() string {
	switch s {
	case StatusDrafted:
		return "📝"
	case StatusTriaged, statusPublished:
		return "📋"
	case StatusClosed:
		return "✅"
	case StatusNotNow:
		return "⏸"
	}
	return "❔"
}

// Next runs the pure transition table. It never touches storage; callers
// re-read the current status inside the transaction that performs the write.
func Next(current CardStatus, action Action) (CardStatus, error) {
	switch action {
	case ActionTriage:
		if current == StatusDrafted || current == StatusTriaged || current == statusPublished {
			return StatusTriaged, nil
		}
	case ActionClose:
		if current == StatusTriaged || current == statusPublished {
			return StatusClosed, nil
		}
	case ActionPostpone:
		if current == StatusTriaged || current == statusPublished {
			return StatusNotNow, nil
		}
	case ActionReopen:
		if current == StatusClosed || current == StatusNotNow {
			return StatusTriaged, nil
		}
	}
	return "", fmt.Errorf("%w: cannot %s a %s card", ErrInvalidTransition, action, current.DisplayName())
}
