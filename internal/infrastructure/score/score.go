// Package score keeps the campaign leaderboard.
package score

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/store.go -package=mocks -source=score.go

// MinUsernameLength is the shortest accepted username after trimming
const MinUsernameLength = 3

// ErrInvalidEntry is returned when an entry cannot be submitted
var ErrInvalidEntry = errors.New("invalid score entry")

// Entry is one finished campaign
type Entry struct {
	ID        string    `json:"id" msgpack:"id"`
	Username  string    `json:"username" msgpack:"username"`
	Class     string    `json:"class" msgpack:"class"`
	Seconds   int       `json:"seconds" msgpack:"seconds"`
	Timestamp time.Time `json:"timestamp" msgpack:"timestamp"`
}

// NewEntry creates an entry with a fresh id. The username is trimmed.
func NewEntry(username, class string, seconds int, now time.Time) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Username:  strings.TrimSpace(username),
		Class:     class,
		Seconds:   seconds,
		Timestamp: now.UTC(),
	}
}

// Validate checks the entry can be stored
func (e Entry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidEntry)
	}
	if len(strings.TrimSpace(e.Username)) < MinUsernameLength {
		return fmt.Errorf("%w: username must be at least %d characters", ErrInvalidEntry, MinUsernameLength)
	}
	if e.Seconds < 0 {
		return fmt.Errorf("%w: negative time %d", ErrInvalidEntry, e.Seconds)
	}
	return nil
}

// Store persists entries and ranks them fastest first
type Store interface {
	Submit(ctx context.Context, entry Entry) error
	Top(ctx context.Context, n int) ([]Entry, error)
	Close() error
}
