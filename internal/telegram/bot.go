// Package telegram adapts the transport-neutral handler layer to the
// Telegram Bot API. It translates updates into handler requests and results
// back into messages; no business logic lives here.
package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"fizzybot/internal/handler"
)

const (
	pollTimeoutSeconds = 30
	handleTimeout      = 25 * time.Second
)

// Bot runs the long-poll loop and fans each update out to its own
// goroutine. Slow storage on one chat never blocks another.
type Bot struct {
	api    *tgbotapi.BotAPI
	router *handler.Router
}

func New(token string, router *handler.Router) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.WithField("username", api.Self.UserName).Info("authorized with Telegram")
	return &Bot{api: api, router: router}, nil
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(ctx, handleTimeout)
	defer cancel()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.Message != nil:
		b.send(update.Message.Chat.ID, handler.Result{
			Text: "I only understand commands. Try /help.",
		})
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	req := handler.Request{
		Command: msg.Command(),
		Args:    msg.CommandArguments(),
		ChatID:  msg.Chat.ID,
		UserID:  msg.From.ID,
	}
	res := b.router.Handle(ctx, req)
	b.send(msg.Chat.ID, res)
}

func (b *Bot) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	cb := handler.Callback{
		UserID: q.From.ID,
		Data:   q.Data,
	}
	if q.Message != nil {
		cb.ChatID = q.Message.Chat.ID
	}
	res := b.router.HandleCallback(ctx, cb)

	// Every callback query gets answered or the button keeps its spinner.
	answer := tgbotapi.NewCallback(q.ID, "")
	if res.Alert {
		answer.Text = res.Text
	}
	if _, err := b.api.Request(answer); err != nil {
		log.WithError(err).Warn("failed to answer callback query")
	}
	if res.Alert || cb.ChatID == 0 {
		return
	}
	b.send(cb.ChatID, res)
}

func (b *Bot) send(chatID int64, res handler.Result) {
	msg := tgbotapi.NewMessage(chatID, res.Text)
	if res.Keyboard != nil {
		msg.ReplyMarkup = inlineKeyboard(res.Keyboard)
	}
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("failed to send message")
	}
}

func inlineKeyboard(kb *handler.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb.Rows))
	for _, row := range kb.Rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Data))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
