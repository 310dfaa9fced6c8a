package model

import (
	"fmt"
	"strings"
	"time"
)

// Card is the main work item in the Fizzy schema. The row is mutated in
// place by this system and by the upstream application concurrently;
// UpdatedAt doubles as the optimistic-lock fingerprint.
type Card struct {
	ID           ID         `gorm:"column:id;primaryKey"`
	AccountID    ID         `gorm:"column:account_id"`
	BoardID      ID         `gorm:"column:board_id"`
	ColumnID     *ID        `gorm:"column:column_id"`
	CreatorID    ID         `gorm:"column:creator_id"`
	Number       int64      `gorm:"column:number"`
	Title        string     `gorm:"column:title"`
	Description  string     `gorm:"column:description"`
	Status       CardStatus `gorm:"column:status"`
	DueOn        *time.Time `gorm:"column:due_on"`
	LastActiveAt time.Time  `gorm:"column:last_active_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`

	// Loaded via joins for display only; never written.
	BoardName   string `gorm:"column:board_name;->"`
	ColumnName  string `gorm:"column:column_name;->"`
	CreatorName string `gorm:"column:creator_name;->"`
}

func (Card) TableName() string { return "cards" }

// CardDraft is the input for creating a card. The number and status are
// assigned by the persistence layer at insert time.
type CardDraft struct {
	BoardID     ID
	CreatorID   ID
	Title       string
	Description string
}

const maxTitleLen = 255

// ValidateTitle checks a card title before it reaches storage.
func ValidateTitle(title string) error {
	t := strings.TrimSpace(title)
	if t == "" {
		return fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if len(t) > maxTitleLen {
		return fmt.Errorf("%w: title longer than %d characters", ErrValidation, maxTitleLen)
	}
	return nil
}

// FormattedNumber renders the human-facing number, e.g. "#42".
func (c *Card) FormattedNumber() string {
	return fmt.Sprintf("#%d", c.Number)
}

// IsActive reports whether the card is in a live state.
func (c *Card) IsActive() bool {
	return c.Status.IsActive()
}

// CanClose reports whether a close request would pass the transition table.
func (c *Card) CanClose() bool {
	_, err := Next(c.Status, ActionClose)
	return err == nil
}

// CanReopen reports whether a reopen request would pass the transition table.
func (c *Card) CanReopen() bool {
	_, err := Next(c.Status, ActionReopen)
	return err == nil
}

// Rename returns a copy with the new title, or a validation error.
func (c Card) Rename(title string) (Card, error) {
	if err := ValidateTitle(title); err != nil {
		return Card{}, err
	}
	c.Title = strings.TrimSpace(title)
	return c, nil
}

// AssignColumn returns a copy placed on the column, status advanced via the
// transition table.
func (c Card) AssignColumn(columnID ID) (Card, error) {
	next, err := Next(c.Status, ActionTriage)
	if err != nil {
		return Card{}, err
	}
	c.ColumnID = &columnID
	c.Status = next
	return c, nil
}

// WebURL builds a link into the upstream web UI, or "" when no base URL is
// configured.
func (c *Card) WebURL(baseURL string) string {
	if baseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/cards/%d", strings.TrimRight(baseURL, "/"), c.AccountID, c.Number)
}
