package handler

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"fizzybot/internal/model"
	"fizzybot/internal/repository"
	"fizzybot/internal/session"

	"github.com/stretchr/testify/assert"
)

func TestFormatError_CoversEveryErrorKind(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"validation", fmt.Errorf("%w: title must not be empty", model.ErrValidation), "title must not be empty"},
		{"transition", model.ErrInvalidTransition, "isn't allowed"},
		{"card missing", repository.ErrCardNotFound, "Card not found"},
		{"board missing", repository.ErrBoardNotFound, "Board not found"},
		{"column missing", repository.ErrColumnNotFound, "Column not found"},
		{"conflict", repository.ErrConcurrentModification, "Someone else changed"},
		{"exhausted", repository.ErrNumberExhausted, "Try again"},
		{"stale", session.ErrStaleInteraction, "expired"},
		{"storage", fmt.Errorf("dial tcp: connection refused"), "Something went wrong"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, formatError(tc.err), tc.want)
		})
	}
}

func TestFormatError_NeverLeaksStorageDetail(t *testing.T) {
	got := formatError(fmt.Errorf("Error 1045: Access denied for user 'fizzy'"))

	assert.NotContains(t, got, "1045")
	assert.NotContains(t, got, "fizzy")
}

func TestParseCallback_Roundtrip(t *testing.T) {
	data := encodeCallback(cbColumn, "0123456789abcdef", 1, "abc123")
	assert.LessOrEqual(t, len(data), 64)

	parsed, err := parseCallback(data)

	assert.NoError(t, err)
	assert.Equal(t, cbColumn, parsed.Action)
	assert.Equal(t, "0123456789abcdef", parsed.Token)
	assert.Equal(t, 1, parsed.Step)
	assert.Equal(t, "abc123", parsed.Choice)
}

func TestParseCallback_RejectsMalformedAsStale(t *testing.T) {
	for _, data := range []string{"", "close", "close:tok", "close:tok:x:choice"} {
		_, err := parseCallback(data)
		assert.ErrorIs(t, err, session.ErrStaleInteraction, data)
	}
}

func TestTruncate_NeverSplitsARune(t *testing.T) {
	cases := []struct {
		name string
		in   string
		n    int
	}{
		{"accent straddles the cut", strings.Repeat("a", 79) + "é…", 80},
		{"emoji straddles the cut", strings.Repeat("x", 78) + "💬💬", 80},
		{"all multi-byte", strings.Repeat("é", 100), 80},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := truncate(tc.in, tc.n)
			assert.True(t, utf8.ValidString(got), got)
			assert.True(t, strings.HasSuffix(got, "…"))
			assert.LessOrEqual(t, len(got), tc.n+len("…"))
		})
	}
}

func TestTruncate_ShortStringsPassThrough(t *testing.T) {
	assert.Equal(t, "héllo", truncate("héllo", 80))
}

func TestColumnSelectorPayloadFitsTelegramLimit(t *testing.T) {
	columns := []model.Column{{ID: model.NewID(), Name: "A very long column name"}}

	kb := columnSelectorKeyboard(columns, "0123456789abcdef")

	for _, row := range kb.Rows {
		for _, btn := range row {
			assert.LessOrEqual(t, len(btn.Data), 64)
		}
	}
}
