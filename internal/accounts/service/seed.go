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
	DefaultAdminPassword = "admin"
	adminEmail           = "admin@example.com"
	adminFullName        = "Administrator"
)

// SeedAdmin creates the admin account when it does not exist yet. It
// reports whether an account was created.
func (s *UserService) SeedAdmin(ctx context.Context, password string) (bool, error) {
	if password == "" {
		password = DefaultAdminPassword
	}

	_, err := s.Store.Users().GetUserByUsername(ctx, domain.AdminUsername)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, err
	}

	if _, err := s.create(ctx, NewAccount{
		Username: domain.AdminUsername,
		Email:    adminEmail,
		FullName: adminFullName,
		Password: password,
	}); err != nil {
		return false, err
	}

	l := slogx.FromContext(ctx)
	l.Info("admin account seeded", slog.String("username", domain.AdminUsername))
	if password == DefaultAdminPassword {
		l.Warn("admin account uses the default password; set ADMIN_PASSWORD")
	}
	return true, nil
}
