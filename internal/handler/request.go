// Package handler routes chat commands and keyboard callbacks to use cases
// and renders transport-neutral results. It knows nothing about Telegram
// message types; the transport adapter translates in both directions.
package handler

// Request is one incoming chat command, already split by the transport.
type Request struct {
	Command string
	Args    string
	ChatID  int64
	UserID  int64
}

// Callback is one keyboard selection event.
type Callback struct {
	ChatID int64
	UserID int64
	Data   string
}

// Button is one keyboard button: a label and the callback payload it sends
// back when pressed.
type Button struct {
	Label string
	Data  string
}

// Keyboard is rendered by the transport as an inline keyboard.
type Keyboard struct {
	Rows [][]Button
}

// Result is what the transport renders back to the chat.
type Result struct {
	Text     string
	Keyboard *Keyboard
	// Alert marks short responses shown as callback answers rather than
	// new messages.
	Alert bool
}
