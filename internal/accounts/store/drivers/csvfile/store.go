package csvfile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
)

const (
	UsersFile    = "users.csv"
	FeedbackFile = "feedback.csv"
)

var (
	userHeader     = []string{"username", "email", "full_name", "hashed_password", "disabled", "avatar", "onboarding_completed"}
	feedbackHeader = []string{"id", "username", "rating", "message", "timestamp"}
)

// Store keeps users and feedback as two CSV tables in one directory.
type Store struct {
	dir      string
	users    *table
	feedback *table
	picker   domain.AvatarPicker
}

type Option func(*Store)

// WithAvatarPicker sets the source of avatars for accounts created without
// one and for rows stored with a blank avatar.
func WithAvatarPicker(p domain.AvatarPicker) Option {
	return func(s *Store) { s.picker = p }
}

// NewStore opens (without creating files) the tables under dir.
func NewStore(dir string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("csvfile: empty data dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("csvfile: create data dir: %w", err)
	}

	s := &Store{
		dir:      dir,
		users:    newTable(dir, UsersFile, userHeader),
		feedback: newTable(dir, FeedbackFile, feedbackHeader),
		picker:   domain.NewRandomAvatars(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Users() store.Users       { return &usersRepo{t: s.users, picker: s.picker} }
func (s *Store) Feedback() store.Feedback { return &feedbackRepo{t: s.feedback} }

// ApplyMigrations writes the header of any table that is missing or empty.
func (s *Store) ApplyMigrations() error {
	if err := s.users.ensure(); err != nil {
		return fmt.Errorf("csvfile: %s: %w", UsersFile, err)
	}
	if err := s.feedback.ensure(); err != nil {
		return fmt.Errorf("csvfile: %s: %w", FeedbackFile, err)
	}
	return nil
}

// Ping checks that the data directory is still there.
func (s *Store) Ping(ctx context.Context) error {
	st, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("csvfile: %s is not a directory", s.dir)
	}
	return nil
}

func (s *Store) Close() error { return nil }

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func parseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
