// Package storetest holds behaviour checks shared by every store driver.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, migrated store whose avatar picker always returns
// PickedAvatar.
type Factory func(t *testing.T) store.Store

// PickedAvatar is what drivers under test must be configured to pick.
const PickedAvatar = "goku.png"

// Run exercises the Users and Feedback repositories of the store built by f.
func Run(t *testing.T, f Factory) {
	t.Run("Users", func(t *testing.T) { RunUsers(t, f) })
	t.Run("Feedback", func(t *testing.T) { RunFeedback(t, f) })
}

func newUser(name string) domain.NewUser {
	return domain.NewUser{
		Username:     name,
		Email:        name + "@example.com",
		FullName:     "User " + name,
		PasswordHash: "$2a$10$hash-of-" + name,
	}
}

// RunUsers checks the Users contract.
func RunUsers(t *testing.T, f Factory) {
	ctx := context.Background()

	t.Run("create and fetch", func(t *testing.T) {
		users := f(t).Users()

		empty, err := users.IsEmpty(ctx)
		require.NoError(t, err)
		require.True(t, empty)

		nu := newUser("goku")
		nu.Avatar = "vegeta.png"
		created, err := users.CreateUser(ctx, nu)
		require.NoError(t, err)
		require.Equal(t, domain.User{
			Username:     "goku",
			Email:        "goku@example.com",
			FullName:     "User goku",
			PasswordHash: nu.PasswordHash,
			Avatar:       "vegeta.png",
		}, created)

		byName, err := users.GetUserByUsername(ctx, "goku")
		require.NoError(t, err)
		require.Equal(t, created, byName)

		byEmail, err := users.GetUserByEmail(ctx, "goku@example.com")
		require.NoError(t, err)
		require.Equal(t, created, byEmail)

		empty, err = users.IsEmpty(ctx)
		require.NoError(t, err)
		require.False(t, empty)
	})

	t.Run("missing user", func(t *testing.T) {
		users := f(t).Users()

		_, err := users.GetUserByUsername(ctx, "nobody")
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = users.GetUserByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)

		for name, op := range map[string]func() (bool, error){
			"password":   func() (bool, error) { return users.UpdatePasswordHash(ctx, "nobody", "x") },
			"avatar":     func() (bool, error) { return users.UpdateAvatar(ctx, "nobody", "cell.png") },
			"onboarding": func() (bool, error) { return users.MarkOnboardingCompleted(ctx, "nobody") },
		} {
			ok, err := op()
			require.NoError(t, err, name)
			require.False(t, ok, name)
		}
	})

	t.Run("blank avatar is picked", func(t *testing.T) {
		users := f(t).Users()

		created, err := users.CreateUser(ctx, newUser("gohan"))
		require.NoError(t, err)
		require.Equal(t, PickedAvatar, created.Avatar)

		got, err := users.GetUserByUsername(ctx, "gohan")
		require.NoError(t, err)
		require.Equal(t, PickedAvatar, got.Avatar)
	})

	t.Run("flags are written through", func(t *testing.T) {
		users := f(t).Users()

		nu := newUser("bardock")
		nu.Disabled = true
		nu.OnboardingCompleted = true
		created, err := users.CreateUser(ctx, nu)
		require.NoError(t, err)
		require.True(t, created.Disabled)
		require.True(t, created.OnboardingCompleted)

		got, err := users.GetUserByUsername(ctx, "bardock")
		require.NoError(t, err)
		require.True(t, got.Disabled)
		require.True(t, got.OnboardingCompleted)
	})

	t.Run("duplicates leave the store unchanged", func(t *testing.T) {
		users := f(t).Users()

		_, err := users.CreateUser(ctx, newUser("piccolo"))
		require.NoError(t, err)

		dupName := newUser("piccolo")
		dupName.Email = "other@example.com"
		_, err = users.CreateUser(ctx, dupName)
		require.ErrorIs(t, err, store.ErrUsernameTaken)
		require.ErrorIs(t, err, store.ErrAlreadyExists)

		dupEmail := newUser("krillin")
		dupEmail.Email = "piccolo@example.com"
		_, err = users.CreateUser(ctx, dupEmail)
		require.ErrorIs(t, err, store.ErrEmailTaken)
		require.ErrorIs(t, err, store.ErrAlreadyExists)

		all, err := users.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		_, err = users.GetUserByEmail(ctx, "other@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("updates", func(t *testing.T) {
		users := f(t).Users()
		_, err := users.CreateUser(ctx, newUser("trunks"))
		require.NoError(t, err)
		_, err = users.CreateUser(ctx, newUser("goten"))
		require.NoError(t, err)

		ok, err := users.UpdatePasswordHash(ctx, "trunks", "$2a$10$new")
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = users.UpdateAvatar(ctx, "trunks", "broly.png")
		require.NoError(t, err)
		require.True(t, ok)

		for range 2 {
			ok, err = users.MarkOnboardingCompleted(ctx, "trunks")
			require.NoError(t, err)
			require.True(t, ok)
		}

		got, err := users.GetUserByUsername(ctx, "trunks")
		require.NoError(t, err)
		require.Equal(t, "$2a$10$new", got.PasswordHash)
		require.Equal(t, "broly.png", got.Avatar)
		require.True(t, got.OnboardingCompleted)

		other, err := users.GetUserByUsername(ctx, "goten")
		require.NoError(t, err)
		require.Equal(t, newUser("goten").PasswordHash, other.PasswordHash)
		require.False(t, other.OnboardingCompleted)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		users := f(t).Users()
		names := []string{"zarbon", "android18", "cell", "beerus"}
		for _, n := range names {
			_, err := users.CreateUser(ctx, newUser(n))
			require.NoError(t, err)
		}

		all, err := users.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, all, len(names))
		for i, u := range all {
			require.Equal(t, names[i], u.Username)
		}
	})

	t.Run("concurrent creates of one username", func(t *testing.T) {
		users := f(t).Users()

		const n = 8
		var wg sync.WaitGroup
		errs := make([]error, n)
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				nu := newUser("vegeta")
				nu.Email = fmt.Sprintf("vegeta%d@example.com", i)
				_, errs[i] = users.CreateUser(ctx, nu)
			}()
		}
		wg.Wait()

		wins := 0
		for _, err := range errs {
			if err == nil {
				wins++
				continue
			}
			require.ErrorIs(t, err, store.ErrAlreadyExists)
		}
		require.Equal(t, 1, wins)

		all, err := users.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
	})
}

// RunFeedback checks the Feedback contract.
func RunFeedback(t *testing.T, f Factory) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		list, err := f(t).Feedback().ListFeedback(ctx)
		require.NoError(t, err)
		require.Empty(t, list)
	})

	t.Run("newest first", func(t *testing.T) {
		fb := f(t).Feedback()
		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

		entries := []domain.Feedback{
			{ID: "a", Username: "goku", Rating: 5, Message: "first", CreatedAt: base},
			{ID: "b", Username: "vegeta", Rating: 1, Message: "third, with \"quotes\"\nand a newline", CreatedAt: base.Add(2 * time.Minute)},
			{ID: "c", Username: "goku", Rating: 3, Message: "second", CreatedAt: base.Add(time.Minute)},
		}
		for _, e := range entries {
			require.NoError(t, fb.CreateFeedback(ctx, e))
		}

		list, err := fb.ListFeedback(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		require.Equal(t, []string{"b", "c", "a"}, []string{list[0].ID, list[1].ID, list[2].ID})

		require.Equal(t, entries[1].Message, list[0].Message)
		require.Equal(t, 1, list[0].Rating)
		require.Equal(t, "vegeta", list[0].Username)
		require.True(t, entries[1].CreatedAt.Equal(list[0].CreatedAt))
	})
}
