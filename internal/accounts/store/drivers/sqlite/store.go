package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/sqlite/gen"
	_ "modernc.org/sqlite"
)

type Store struct {
	db     *sql.DB
	q      *gen.Queries
	dsn    string
	picker domain.AvatarPicker
}

type Option func(*Store)

// WithAvatarPicker sets the source of avatars for accounts created without one.
func WithAvatarPicker(p domain.AvatarPicker) Option {
	return func(s *Store) { s.picker = p }
}

func NewStore(dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// One connection: sqlite has a single writer anyway, and ":memory:" would
	// otherwise give every pooled connection its own empty database.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{`PRAGMA foreign_keys = ON;`, `PRAGMA busy_timeout = 5000;`} {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", pragma, err)
		}
	}

	s := &Store{
		db:     db,
		q:      gen.New(db),
		dsn:    dsn,
		picker: domain.NewRandomAvatars(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithTx runs fn inside a transaction, committing when fn returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Safe to call even after commit
	defer func() {
		_ = sqlTx.Rollback()
	}()

	if err := fn(newTx(sqlTx, s.picker)); err != nil {
		return err
	}
	return sqlTx.Commit()
}

func (s *Store) Users() store.Users {
	return &usersRepo{q: s.q, picker: s.picker, store: s}
}

func (s *Store) Feedback() store.Feedback { return &feedbackRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}
