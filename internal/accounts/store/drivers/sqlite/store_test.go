package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/sqlite"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/storetest"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T, dsn string) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(dsn, sqlite.WithAvatarPicker(domain.FixedAvatar(storetest.PickedAvatar)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestStoreContractInMemory(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return open(t, ":memory:")
	})
}

func TestStoreContractFile(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return open(t, filepath.Join(t.TempDir(), "accounts.db"))
	})
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.db")
	s := open(t, path)
	require.NoError(t, s.ApplyMigrations())

	ctx := context.Background()
	_, err := s.Users().CreateUser(ctx, domain.NewUser{Username: "goku", Email: "goku@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening runs migrations against an existing schema and keeps the data.
	reopened := open(t, path)
	u, err := reopened.Users().GetUserByUsername(ctx, "goku")
	require.NoError(t, err)
	require.Equal(t, "goku@example.com", u.Email)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := open(t, ":memory:")
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx *sqlite.Tx) error {
		if _, err := tx.Users().CreateUser(ctx, domain.NewUser{Username: "krillin", Email: "k@example.com", PasswordHash: "h"}); err != nil {
			return err
		}
		_, err := tx.Users().CreateUser(ctx, domain.NewUser{Username: "krillin", Email: "other@example.com", PasswordHash: "h"})
		return err
	})
	require.ErrorIs(t, err, store.ErrUsernameTaken)

	_, err = s.Users().GetUserByUsername(ctx, "krillin")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestPing(t *testing.T) {
	s := open(t, ":memory:")
	require.NoError(t, s.Ping(context.Background()))
}
