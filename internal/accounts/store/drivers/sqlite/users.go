package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q      *gen.Queries
	picker domain.AvatarPicker

	// store is nil when the repo is already inside a transaction.
	store *Store
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row, err := r.q.GetUserByUsername(ctx, username)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return r.mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return r.mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.NewUser) (domain.User, error) {
	if r.store != nil {
		var created domain.User
		err := r.store.WithTx(ctx, func(tx *Tx) error {
			var err error
			created, err = tx.Users().CreateUser(ctx, u)
			return err
		})
		return created, err
	}

	if n, err := r.q.UsernameExists(ctx, u.Username); err != nil {
		return domain.User{}, err
	} else if n != 0 {
		return domain.User{}, store.ErrUsernameTaken
	}
	if n, err := r.q.EmailExists(ctx, u.Email); err != nil {
		return domain.User{}, err
	} else if n != 0 {
		return domain.User{}, store.ErrEmailTaken
	}

	avatar := u.Avatar
	if avatar == "" {
		avatar = r.picker.Pick()
	}

	row, err := r.q.CreateUser(ctx, gen.CreateUserParams{
		Username:            u.Username,
		Email:               u.Email,
		FullName:            u.FullName,
		HashedPassword:      u.PasswordHash,
		Disabled:            u.Disabled,
		Avatar:              avatar,
		OnboardingCompleted: u.OnboardingCompleted,
	})
	if err != nil {
		return domain.User{}, mapUnique(err)
	}
	return r.mapUser(row), nil
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, username, hash string) (bool, error) {
	n, err := r.q.UpdateUserPasswordHash(ctx, gen.UpdateUserPasswordHashParams{
		HashedPassword: hash,
		Username:       username,
	})
	return n > 0, err
}

func (r *usersRepo) UpdateAvatar(ctx context.Context, username, avatar string) (bool, error) {
	n, err := r.q.UpdateUserAvatar(ctx, gen.UpdateUserAvatarParams{
		Avatar:   avatar,
		Username: username,
	})
	return n > 0, err
}

func (r *usersRepo) MarkOnboardingCompleted(ctx context.Context, username string) (bool, error) {
	n, err := r.q.MarkUserOnboardingCompleted(ctx, username)
	return n > 0, err
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.q.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.mapUser(row))
	}
	return out, nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	n, err := r.q.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

func (r *usersRepo) mapUser(row gen.User) domain.User {
	avatar := row.Avatar
	if avatar == "" {
		avatar = r.picker.Pick()
	}
	return domain.User{
		Username:            row.Username,
		Email:               row.Email,
		FullName:            row.FullName,
		PasswordHash:        row.HashedPassword,
		Disabled:            row.Disabled,
		Avatar:              avatar,
		OnboardingCompleted: row.OnboardingCompleted,
	}
}

// mapUnique translates a UNIQUE violation that slipped past the existence
// checks, e.g. from another process sharing the file.
func mapUnique(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: users.username"):
		return store.ErrUsernameTaken
	case strings.Contains(msg, "UNIQUE constraint failed: users.email"):
		return store.ErrEmailTaken
	}
	return err
}
