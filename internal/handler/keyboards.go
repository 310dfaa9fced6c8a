package handler

import "fizzybot/internal/model"

// cardActionsKeyboard renders the action row under /card output. Every
// button carries the pending interaction's correlation token.
func cardActionsKeyboard(card *model.Card, token string) *Keyboard {
	var row []Button
	if card.CanClose() {
		row = append(row, Button{Label: "✅ Close", Data: encodeCallback(cbClose, token, 0, "")})
		row = append(row, Button{Label: "⏸ Not now", Data: encodeCallback(cbPostpone, token, 0, "")})
	}
	if card.CanReopen() {
		row = append(row, Button{Label: "🔄 Reopen", Data: encodeCallback(cbReopen, token, 0, "")})
	}
	row = append(row, Button{Label: "➡️ Move", Data: encodeCallback(cbMove, token, 0, "")})

	return &Keyboard{Rows: [][]Button{
		row,
		{{Label: "✖️ Cancel", Data: encodeCallback(cbCancel, token, 0, "")}},
	}}
}

// columnSelectorKeyboard renders one button per column, plus cancel.
func columnSelectorKeyboard(columns []model.Column, token string) *Keyboard {
	rows := make([][]Button, 0, len(columns)+1)
	for _, col := range columns {
		rows = append(rows, []Button{{
			Label: col.FormattedName(),
			Data:  encodeCallback(cbColumn, token, 1, col.ID.String()),
		}})
	}
	rows = append(rows, []Button{{Label: "✖️ Cancel", Data: encodeCallback(cbCancel, token, 1, "")}})
	return &Keyboard{Rows: rows}
}
