package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrUsernameTaken and ErrEmailTaken both match ErrAlreadyExists.
	ErrUsernameTaken = fmt.Errorf("%w: username", ErrAlreadyExists)
	ErrEmailTaken    = fmt.Errorf("%w: email", ErrAlreadyExists)

	// ErrReadOnly is returned by backends that can only look accounts up.
	ErrReadOnly = errors.New("store: read-only backend")
)

// Store is the root data access interface. Drivers (csvfile, sqlite) implement
// it; sub-repositories keep the concerns apart.
type Store interface {
	Users() Users
	Feedback() Feedback

	// ApplyMigrations creates or upgrades the schema. Safe to call repeatedly.
	ApplyMigrations() error

	// Ping verifies the backing storage is reachable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

type Users interface {
	// GetUserByUsername is used by login and token resolution.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail is the login fallback when the identifier is an email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a user, picking an avatar when none is given. Fails
	// with ErrUsernameTaken or ErrEmailTaken and leaves the store untouched.
	CreateUser(ctx context.Context, u domain.NewUser) (domain.User, error)

	// UpdatePasswordHash reports false when no such user exists.
	UpdatePasswordHash(ctx context.Context, username, hash string) (bool, error)

	// UpdateAvatar reports false when no such user exists. The caller
	// validates the avatar.
	UpdateAvatar(ctx context.Context, username, avatar string) (bool, error)

	// MarkOnboardingCompleted sets the flag; calling it twice is harmless.
	MarkOnboardingCompleted(ctx context.Context, username string) (bool, error)

	// ListUsers returns every user in insertion order.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Feedback interface {
	// CreateFeedback appends one entry.
	CreateFeedback(ctx context.Context, f domain.Feedback) error

	// ListFeedback returns every entry, newest first.
	ListFeedback(ctx context.Context) ([]domain.Feedback, error)
}

// Pinger is implemented by repositories with their own connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// WithUsers returns s with its user repository replaced by users. Feedback,
// migrations and lifecycle stay with s; Ping also checks users when it can.
func WithUsers(s Store, users Users) Store {
	return &splitStore{Store: s, users: users}
}

type splitStore struct {
	Store

	users Users
}

func (s *splitStore) Users() Users { return s.users }

func (s *splitStore) Ping(ctx context.Context) error {
	if err := s.Store.Ping(ctx); err != nil {
		return err
	}
	if p, ok := s.users.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
