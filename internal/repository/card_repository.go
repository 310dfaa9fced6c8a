package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"fizzybot/internal/metrics"
	"fizzybot/internal/model"
)

// maxAllocAttempts bounds number-allocation retries when an external writer
// races us onto the same card number.
const maxAllocAttempts = 3

const listLimit = 25

// cardSelect pulls the card row plus display names in one query.
const cardSelect = "cards.*, boards.name AS board_name, columns.name AS column_name, users.name AS creator_name"

type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) cardQuery(ctx context.Context, accountID model.ID) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("cards").
		Select(cardSelect).
		Joins("JOIN boards ON boards.id = cards.board_id").
		Joins("LEFT JOIN columns ON columns.id = cards.column_id").
		Joins("LEFT JOIN users ON users.id = cards.creator_id").
		Where("cards.account_id = ?", accountID)
}

// FindByNumber resolves a card by its account-scoped sequential number.
func (r *CardRepository) FindByNumber(ctx context.Context, accountID model.ID, number int64) (*model.Card, error) {
	var card model.Card
	err := r.cardQuery(ctx, accountID).Where("cards.number = ?", number).Take(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

// FindByID resolves a card by its opaque identifier.
func (r *CardRepository) FindByID(ctx context.Context, accountID, id model.ID) (*model.Card, error) {
	var card model.Card
	err := r.cardQuery(ctx, accountID).Where("cards.id = ?", id).Take(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

// ListAssigned returns the user's active cards, most recently active first.
func (r *CardRepository) ListAssigned(ctx context.Context, accountID, userID model.ID) ([]model.Card, error) {
	var cards []model.Card
	err := r.cardQuery(ctx, accountID).
		Joins("JOIN assignments ON assignments.card_id = cards.id").
		Where("assignments.assignee_id = ?", userID).
		Where("cards.status IN ?", activeStatuses()).
		Order("cards.last_active_at DESC").
		Limit(listLimit).
		Find(&cards).Error
	return cards, err
}

// ListByBoard returns a board's active cards in column order.
func (r *CardRepository) ListByBoard(ctx context.Context, accountID, boardID model.ID) ([]model.Card, error) {
	var cards []model.Card
	err := r.cardQuery(ctx, accountID).
		Where("cards.board_id = ?", boardID).
		Where("cards.status IN ?", activeStatuses()).
		Order("columns.position, cards.number").
		Limit(listLimit).
		Find(&cards).Error
	return cards, err
}

func activeStatuses() []string {
	return []string{"drafted", "triaged", "published"}
}

// Create allocates the next account-scoped card number and inserts the card
// in one transaction: bump the account counter, read it back, insert with
// that number. A duplicate-key error means an external writer took the
// number through a different allocation path; the whole transaction is
// retried with a fresh counter read, up to maxAllocAttempts.
func (r *CardRepository) Create(ctx context.Context, accountID model.ID, draft model.CardDraft) (*model.Card, error) {
	var lastErr error
	for attempt := 0; attempt < maxAllocAttempts; attempt++ {
		card, err := r.tryCreate(ctx, accountID, draft)
		if err == nil {
			return card, nil
		}
		if !isDuplicateKey(err) {
			return nil, err
		}
		metrics.AllocationRetries.Inc()
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %v", ErrNumberExhausted, lastErr)
}

func (r *CardRepository) tryCreate(ctx context.Context, accountID model.ID, draft model.CardDraft) (*model.Card, error) {
	now := time.Now()
	card := model.Card{
		ID:           model.NewID(),
		AccountID:    accountID,
		BoardID:      draft.BoardID,
		CreatorID:    draft.CreatorID,
		Title:        draft.Title,
		Description:  draft.Description,
		Status:       model.StatusDrafted,
		LastActiveAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec("UPDATE accounts SET cards_count = cards_count + 1 WHERE id = ?", accountID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAccountNotFound
		}
		// Same transaction: reads our own increment under the row lock.
		if err := tx.Raw("SELECT cards_count FROM accounts WHERE id = ?", accountID).
			Scan(&card.Number).Error; err != nil {
			return err
		}
		return tx.Create(&card).Error
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// UpdateStatus applies a lifecycle action to the card, writing the status
// and its audit record (Closure/NotNow) atomically. The row's updated_at is
// the optimistic-lock fingerprint: if it moved between our read and write,
// the transaction aborts with ErrConcurrentModification.
func (r *CardRepository) UpdateStatus(ctx context.Context, accountID, cardID model.ID, action model.Action, actorID model.ID) (*model.Card, error) {
	var updated model.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card, err := lockCard(tx, accountID, cardID)
		if err != nil {
			return err
		}

		next, err := model.Next(card.Status, action)
		if err != nil {
			return err
		}

		now := time.Now()
		if err := writeCardStatus(tx, card, next, now); err != nil {
			return err
		}

		switch action {
		case model.ActionClose:
			err = tx.Create(&model.Closure{
				ID:        model.NewID(),
				AccountID: accountID,
				CardID:    cardID,
				CreatorID: actorID,
				CreatedAt: now,
			}).Error
		case model.ActionPostpone:
			err = tx.Create(&model.NotNow{
				ID:        model.NewID(),
				AccountID: accountID,
				CardID:    cardID,
				CreatorID: actorID,
				CreatedAt: now,
			}).Error
		case model.ActionReopen:
			err = removeAuditRecord(tx, card)
		}
		if err != nil {
			return err
		}

		updated = *card
		updated.Status = next
		updated.LastActiveAt = now
		updated.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Move places the card on a column, advancing its status through the
// transition table under the same fingerprint discipline as UpdateStatus.
func (r *CardRepository) Move(ctx context.Context, accountID, cardID, columnID model.ID) (*model.Card, error) {
	var updated model.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card, err := lockCard(tx, accountID, cardID)
		if err != nil {
			return err
		}

		moved, err := card.AssignColumn(columnID)
		if err != nil {
			return err
		}

		now := time.Now()
		res := tx.Exec(
			"UPDATE cards SET column_id = ?, status = ?, last_active_at = ?, updated_at = ? WHERE id = ? AND account_id = ? AND updated_at = ?",
			columnID, moved.Status, now, now, cardID, accountID, card.UpdatedAt,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConcurrentModification
		}

		updated = moved
		updated.LastActiveAt = now
		updated.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Rename updates the card title under the fingerprint discipline.
func (r *CardRepository) Rename(ctx context.Context, accountID, cardID model.ID, title string) (*model.Card, error) {
	var updated model.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card, err := lockCard(tx, accountID, cardID)
		if err != nil {
			return err
		}

		renamed, err := card.Rename(title)
		if err != nil {
			return err
		}

		now := time.Now()
		res := tx.Exec(
			"UPDATE cards SET title = ?, updated_at = ? WHERE id = ? AND account_id = ? AND updated_at = ?",
			renamed.Title, now, cardID, accountID, card.UpdatedAt,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConcurrentModification
		}

		updated = renamed
		updated.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// lockCard re-reads the card inside the calling transaction. FOR UPDATE
// keeps the row stable between our read and write; the fingerprint check on
// the write still catches edits committed before we acquired the lock.
func lockCard(tx *gorm.DB, accountID, cardID model.ID) (*model.Card, error) {
	var card model.Card
	err := tx.Raw(
		"SELECT id, account_id, board_id, column_id, creator_id, number, title, description, status, due_on, last_active_at, created_at, updated_at FROM cards WHERE account_id = ? AND id = ? FOR UPDATE",
		accountID, cardID,
	).Scan(&card).Error
	if err != nil {
		return nil, err
	}
	if card.ID.IsZero() {
		return nil, ErrCardNotFound
	}
	if _, err := model.ParseStatus(string(card.Status)); err != nil {
		return nil, err
	}
	return &card, nil
}

func writeCardStatus(tx *gorm.DB, card *model.Card, next model.CardStatus, now time.Time) error {
	res := tx.Exec(
		"UPDATE cards SET status = ?, last_active_at = ?, updated_at = ? WHERE id = ? AND account_id = ? AND updated_at = ?",
		next, now, now, card.ID, card.AccountID, card.UpdatedAt,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConcurrentModification
	}
	return nil
}

// removeAuditRecord deletes the Closure or NotNow row on reopen. A missing
// record means the status and its audit evidence disagree, which only an
// external writer can produce.
func removeAuditRecord(tx *gorm.DB, card *model.Card) error {
	var table string
	switch card.Status {
	case model.StatusClosed:
		table = "closures"
	case model.StatusNotNow:
		table = "not_nows"
	default:
		return fmt.Errorf("%w: no audit record for %s", model.ErrInvalidTransition, card.Status)
	}
	res := tx.Exec("DELETE FROM "+table+" WHERE account_id = ? AND card_id = ?", card.AccountID, card.ID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConcurrentModification
	}
	return nil
}

func isDuplicateKey(err error) bool {
	var mysqlErr *mysqldrv.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
