package handler

import (
	"fmt"
	"strconv"
	"strings"

	"fizzybot/internal/session"
)

// Callback payload format: action:token:step:choice. Kept under Telegram's
// 64-byte payload cap by the 16-character session tokens.
type callbackData struct {
	Action string
	Token  string
	Step   int
	Choice string
}

// Callback actions.
const (
	cbClose    = "close"
	cbReopen   = "reopen"
	cbPostpone = "later"
	cbMove     = "move"
	cbColumn   = "col"
	cbCancel   = "cancel"
)

func encodeCallback(action, token string, step int, choice string) string {
	return fmt.Sprintf("%s:%s:%d:%s", action, token, step, choice)
}

// parseCallback rejects anything that does not parse as a stale
// interaction: an unparseable payload is by definition not bound to any
// pending record.
func parseCallback(data string) (callbackData, error) {
	parts := strings.SplitN(data, ":", 4)
	if len(parts) != 4 {
		return callbackData{}, session.ErrStaleInteraction
	}
	step, err := strconv.Atoi(parts[2])
	if err != nil {
		return callbackData{}, session.ErrStaleInteraction
	}
	return callbackData{
		Action: parts[0],
		Token:  parts[1],
		Step:   step,
		Choice: parts[3],
	}, nil
}
