package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

const (
	DetailUsernameExists = "Username already exists"
	DetailEmailExists    = "Email already exists"
	DetailInvalidAvatar  = "Invalid avatar selection"
)

// NewAccount is a validated signup or admin create request.
type NewAccount struct {
	Username string
	Email    string
	FullName string
	Password string
	Avatar   string
	Disabled bool
}

type UserService struct {
	Store   store.Store
	Avatars AvatarCatalog
}

// Signup registers a self-service account. Disabled is ignored.
func (s *UserService) Signup(ctx context.Context, acct NewAccount) (domain.User, error) {
	acct.Disabled = false
	return s.create(ctx, acct)
}

// AdminCreate registers an account on behalf of the admin.
func (s *UserService) AdminCreate(ctx context.Context, acct NewAccount) (domain.User, error) {
	return s.create(ctx, acct)
}

func (s *UserService) create(ctx context.Context, acct NewAccount) (domain.User, error) {
	if acct.Avatar != "" && !s.Avatars.Allowed(acct.Avatar) {
		return domain.User{}, validationError(DetailInvalidAvatar)
	}

	hash, err := hashNewPassword(acct.Password)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.Store.Users().CreateUser(ctx, domain.NewUser{
		Username:     acct.Username,
		Email:        acct.Email,
		FullName:     acct.FullName,
		PasswordHash: hash,
		Avatar:       acct.Avatar,
		Disabled:     acct.Disabled,
	})
	switch {
	case errors.Is(err, store.ErrUsernameTaken):
		return domain.User{}, &DetailError{Kind: ErrDuplicateKey, Detail: DetailUsernameExists}
	case errors.Is(err, store.ErrEmailTaken):
		return domain.User{}, &DetailError{Kind: ErrDuplicateKey, Detail: DetailEmailExists}
	case err != nil:
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user created", slog.String("username", user.Username))
	return user, nil
}

// CompleteOnboarding sets the onboarding flag and returns the fresh record.
func (s *UserService) CompleteOnboarding(ctx context.Context, username string) (domain.User, error) {
	ok, err := s.Store.Users().MarkOnboardingCompleted(ctx, username)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, ErrUserVanished
	}
	return s.reload(ctx, username)
}

// UpdateAvatar switches the user's avatar to one from the allow-list.
func (s *UserService) UpdateAvatar(ctx context.Context, username, avatar string) (domain.User, error) {
	if !s.Avatars.Allowed(avatar) {
		return domain.User{}, validationError(DetailInvalidAvatar)
	}

	ok, err := s.Store.Users().UpdateAvatar(ctx, username, avatar)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, ErrUserVanished
	}
	return s.reload(ctx, username)
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

// IsAdmin reports whether u may use the admin routes.
func (s *UserService) IsAdmin(u domain.User) bool { return u.IsAdmin() }

// AvatarList returns the allow-list.
func (s *UserService) AvatarList() []string { return s.Avatars.List() }

func (s *UserService) reload(ctx context.Context, username string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserVanished
	}
	return user, err
}
