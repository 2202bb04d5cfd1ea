// ABOUTME: Store interface, data types, and sentinel errors for persistence.
// ABOUTME: Implementations must return the sentinels so callers can errors.Is them.

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when registering an email that is taken.
var ErrDuplicateEmail = errors.New("email already registered")

// User is a registered account. PasswordHash is a bcrypt hash, never the
// clear-text password.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Event is one activity log entry served by the history API.
type Event struct {
	ID        string
	Text      string
	CreatedAt time.Time
}

// Store is the persistence contract used by the gateway.
type Store interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)

	RecordEvent(ctx context.Context, text string) error
	RecentEvents(ctx context.Context, limit int) ([]*Event, error)

	Close() error
}
