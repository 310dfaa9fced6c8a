// Package session tracks in-flight multi-round-trip chat interactions. A
// chat protocol delivers one logical action (say, "move card to column") as
// a command followed by keyboard selections; each selection carries a
// correlation token binding it to the pending record that rendered the
// keyboard. Tokens from keyboards of an earlier conversation turn no longer
// match and are rejected without touching anything.
package session

import (
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrStaleInteraction is returned when a selection's token does not match
// the chat's current pending record, or the record expired.
var ErrStaleInteraction = errors.New("stale interaction")

// DefaultTTL is how long a rendered keyboard stays answerable.
const DefaultTTL = 5 * time.Minute

// Pending is one chat's in-flight interaction. At most one per chat.
type Pending struct {
	Action     string
	CardNumber int64
	Step       int
	Token      string
	Data       map[string]string
	ExpiresAt  time.Time
}

func (p *Pending) expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// newToken mints a 16-character correlation token. Telegram callback
// payloads are capped at 64 bytes, so the token stays short; 64 random bits
// are plenty for correlating one chat's keyboards.
func newToken() string {
	u := uuid.New()
	return hex.EncodeToString(u[:8])
}

// Manager holds pending interactions keyed by chat id.
type Manager struct {
	mu      sync.Mutex
	pending map[int64]*Pending
	ttl     time.Duration
	now     func() time.Time
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		pending: make(map[int64]*Pending),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Begin starts a pending interaction for the chat, replacing any previous
// one. The returned record carries a fresh correlation token.
func (m *Manager) Begin(chatID int64, action string, cardNumber int64) *Pending {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := &Pending{
		Action:     action,
		CardNumber: cardNumber,
		Token:      newToken(),
		Data:       make(map[string]string),
		ExpiresAt:  m.now().Add(m.ttl),
	}
	m.pending[chatID] = p
	return p
}

// Resolve returns the chat's pending record if the token matches and the
// record has not expired. Failure never mutates state: an expired record
// stays until swept, so the error is repeatable rather than racy.
func (m *Manager) Resolve(chatID int64, token string) (*Pending, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.pending[chatID]
	if !ok || p.Token != token || p.expired(m.now()) {
		return nil, ErrStaleInteraction
	}
	return p, nil
}

// Advance records a selection on the pending record and bumps its step.
func (m *Manager) Advance(chatID int64, token, key, value string) (*Pending, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.pending[chatID]
	if !ok || p.Token != token || p.expired(m.now()) {
		return nil, ErrStaleInteraction
	}
	p.Data[key] = value
	p.Step++
	return p, nil
}

// Complete clears the chat's pending interaction.
func (m *Manager) Complete(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, chatID)
}

// Cancel is Complete under the name the cancel button uses.
func (m *Manager) Cancel(chatID int64) {
	m.Complete(chatID)
}

// Sweep drops expired records and returns how many were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for chatID, p := range m.pending {
		if p.expired(now) {
			delete(m.pending, chatID)
			removed++
		}
	}
	return removed
}

// Run sweeps on a ticker until the stop channel closes.
func (m *Manager) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.Sweep()
		case <-stop:
			return
		}
	}
}
