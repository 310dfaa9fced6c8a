package handler

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"fizzybot/internal/model"
	"fizzybot/internal/repository"
	"fizzybot/internal/session"
	"fizzybot/internal/usecase"
)

func formatCard(detail *usecase.CardDetail) string {
	c := &detail.Card
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", c.Status.Emoji(), c.FormattedNumber(), c.Title)
	fmt.Fprintf(&b, "Status: %s\n", c.Status.DisplayName())
	fmt.Fprintf(&b, "Board: %s\n", c.BoardName)
	if c.ColumnName != "" {
		fmt.Fprintf(&b, "Column: %s\n", c.ColumnName)
	}
	if c.CreatorName != "" {
		fmt.Fprintf(&b, "Created by: %s\n", c.CreatorName)
	}
	if c.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", truncate(c.Description, 300))
	}
	if detail.CommentCount > 0 {
		fmt.Fprintf(&b, "💬 %d comments\n", detail.CommentCount)
		for _, comment := range detail.Recent {
			if comment.CreatorName != "" {
				fmt.Fprintf(&b, "· %s: %s\n", comment.CreatorName, truncate(comment.Body, 80))
			} else {
				fmt.Fprintf(&b, "· %s\n", truncate(comment.Body, 80))
			}
		}
	}
	fmt.Fprintf(&b, "\nAdd a comment: /comment %d <text>\n", c.Number)
	if detail.WebURL != "" {
		fmt.Fprintf(&b, "\n%s", detail.WebURL)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatCardLine(c *model.Card) string {
	line := fmt.Sprintf("%s %s %s", c.Status.Emoji(), c.FormattedNumber(), c.Title)
	if c.ColumnName != "" {
		line += fmt.Sprintf(" · %s", c.ColumnName)
	}
	return line
}

func formatCardList(header string, cards []model.Card) string {
	if len(cards) == 0 {
		return header + "\n\nNothing here."
	}
	lines := make([]string, 0, len(cards)+2)
	lines = append(lines, header, "")
	for i := range cards {
		lines = append(lines, formatCardLine(&cards[i]))
	}
	return strings.Join(lines, "\n")
}

func formatBoards(boards []model.Board) string {
	if len(boards) == 0 {
		return "No boards found."
	}
	lines := make([]string, 0, len(boards)+2)
	lines = append(lines, "Boards:", "")
	for _, b := range boards {
		lines = append(lines, "📋 "+b.Name)
	}
	lines = append(lines, "", "Use /board <name> to see its cards.")
	return strings.Join(lines, "\n")
}

// formatError maps every error kind to a user-facing message. Storage
// internals never reach the chat; the router logs the cause.
func formatError(err error) string {
	switch {
	case errors.Is(err, model.ErrValidation):
		return "⚠️ " + userFacing(err, "That input doesn't look right.")
	case errors.Is(err, model.ErrInvalidTransition):
		return "⚠️ " + userFacing(err, "That status change isn't allowed.")
	case errors.Is(err, repository.ErrCardNotFound):
		return "🔍 Card not found."
	case errors.Is(err, repository.ErrBoardNotFound):
		return "🔍 Board not found."
	case errors.Is(err, repository.ErrColumnNotFound):
		return "🔍 Column not found."
	case errors.Is(err, repository.ErrConcurrentModification):
		return "⚠️ Someone else changed this card just now. Take another look and retry."
	case errors.Is(err, repository.ErrNumberExhausted):
		return "⚠️ Couldn't reserve a card number, the board is busy. Try again."
	case errors.Is(err, session.ErrStaleInteraction):
		return "⏰ That keyboard has expired. Run the command again."
	default:
		return "❌ Something went wrong. Try again in a moment."
	}
}

// userFacing shows the part of a validation message after the sentinel
// prefix, falling back when there is none.
func userFacing(err error, fallback string) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 && i+2 < len(msg) {
		return msg[i+2:]
	}
	return fallback
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// Back off to a rune boundary so the cut never produces invalid UTF-8,
	// which the chat transport refuses to send.
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}
