package csvfile

import (
	"context"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
)

type usersRepo struct {
	t      *table
	picker domain.AvatarPicker
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.find("username", username)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.find("email", email)
}

func (r *usersRepo) find(col, val string) (domain.User, error) {
	rows, err := r.t.read()
	if err != nil {
		return domain.User{}, err
	}
	for _, rec := range rows {
		if rec[col] == val {
			return r.toUser(rec), nil
		}
	}
	return domain.User{}, store.ErrNotFound
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.NewUser) (domain.User, error) {
	avatar := u.Avatar
	if avatar == "" {
		avatar = r.picker.Pick()
	}
	rec := record{
		"username":             u.Username,
		"email":                u.Email,
		"full_name":            u.FullName,
		"hashed_password":      u.PasswordHash,
		"disabled":             formatBool(u.Disabled),
		"avatar":               avatar,
		"onboarding_completed": formatBool(u.OnboardingCompleted),
	}

	err := r.t.update(func(rows []record) ([]record, bool, error) {
		for _, existing := range rows {
			if existing["username"] == u.Username {
				return nil, false, store.ErrUsernameTaken
			}
		}
		for _, existing := range rows {
			if existing["email"] == u.Email {
				return nil, false, store.ErrEmailTaken
			}
		}
		return append(rows, rec), true, nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return r.toUser(rec), nil
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, username, hash string) (bool, error) {
	return r.set(username, "hashed_password", hash)
}

func (r *usersRepo) UpdateAvatar(ctx context.Context, username, avatar string) (bool, error) {
	return r.set(username, "avatar", avatar)
}

func (r *usersRepo) MarkOnboardingCompleted(ctx context.Context, username string) (bool, error) {
	return r.set(username, "onboarding_completed", formatBool(true))
}

// set rewrites one column of the named user's row.
func (r *usersRepo) set(username, col, val string) (bool, error) {
	found := false
	err := r.t.update(func(rows []record) ([]record, bool, error) {
		for _, rec := range rows {
			if rec["username"] == username {
				rec[col] = val
				found = true
			}
		}
		return rows, found, nil
	})
	return found, err
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.t.read()
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(rows))
	for _, rec := range rows {
		out = append(out, r.toUser(rec))
	}
	return out, nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	rows, err := r.t.read()
	if err != nil {
		return false, err
	}
	return len(rows) == 0, nil
}

// toUser maps a row; a blank avatar is filled from the picker but not saved.
func (r *usersRepo) toUser(rec record) domain.User {
	avatar := rec["avatar"]
	if avatar == "" {
		avatar = r.picker.Pick()
	}
	return domain.User{
		Username:            rec["username"],
		Email:               rec["email"],
		FullName:            rec["full_name"],
		PasswordHash:        rec["hashed_password"],
		Disabled:            parseBool(rec["disabled"]),
		Avatar:              avatar,
		OnboardingCompleted: parseBool(rec["onboarding_completed"]),
	}
}
