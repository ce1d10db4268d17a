package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/aussiebroadwan/accounts/pkg/jwtx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// Tokens mints and checks session tokens. *jwtx.HMACSigner implements it.
type Tokens interface {
	IssueAccess(subject string, ttl time.Duration) (string, jwtx.Claims, error)
	IssueRefresh(subject string, ttl time.Duration) (string, jwtx.Claims, error)
	Verify(token string) (jwtx.Claims, error)
}

// TokenPair is the result of a successful login. RefreshToken is empty unless
// refresh tokens are enabled.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

type AuthService struct {
	Store      store.Store
	Tokens     Tokens
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// IssueRefresh adds a refresh token to every login.
	IssueRefresh bool
}

// Authenticate resolves identifier as a username, then as an email, and
// checks password against the stored hash. Unknown accounts and wrong
// passwords both yield ErrInvalidCredentials. Hashes in an outdated format
// are upgraded in place after a successful check.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	users := s.Store.Users()
	user, err := users.GetUserByUsername(ctx, identifier)
	if errors.Is(err, store.ErrNotFound) {
		user, err = users.GetUserByEmail(ctx, identifier)
	}
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatch) {
			l.Warn("stored password hash unusable", slog.String("username", user.Username), slog.Any("error", err))
		}
		return domain.User{}, ErrInvalidCredentials
	}

	if cryptox.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, &user, password)
	}
	return user, nil
}

func (s *AuthService) rehash(ctx context.Context, user *domain.User, password string) {
	l := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Warn("password rehash failed", slog.String("username", user.Username), slog.Any("error", err))
		return
	}
	ok, err := s.Store.Users().UpdatePasswordHash(ctx, user.Username, hash)
	switch {
	case errors.Is(err, store.ErrReadOnly):
		return
	case err != nil:
		l.Warn("password rehash not stored", slog.String("username", user.Username), slog.Any("error", err))
		return
	case ok:
		user.PasswordHash = hash
		l.Info("password hash upgraded", slog.String("username", user.Username))
	}
}

// Login authenticates and issues tokens for the account.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (TokenPair, error) {
	user, err := s.Authenticate(ctx, identifier, password)
	if err != nil {
		slogx.FromContext(ctx).Info("login failed", slog.String("identifier", identifier))
		return TokenPair{}, err
	}

	access, claims, err := s.Tokens.IssueAccess(user.Username, s.accessTTL())
	if err != nil {
		return TokenPair{}, err
	}
	pair := TokenPair{AccessToken: access, ExpiresAt: claims.Expiry()}

	if s.IssueRefresh {
		refresh, _, err := s.Tokens.IssueRefresh(user.Username, s.refreshTTL())
		if err != nil {
			return TokenPair{}, err
		}
		pair.RefreshToken = refresh
	}
	return pair, nil
}

// ResolveCurrentUser maps a bearer token to its account. Any verification
// failure, and a subject that no longer exists, is ErrUnauthorized.
func (s *AuthService) ResolveCurrentUser(ctx context.Context, token string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.Tokens.Verify(token)
	if err != nil {
		l.Debug("token rejected", slog.Any("error", err))
		return domain.User{}, ErrUnauthorized
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, claims.Subject)
	if errors.Is(err, store.ErrNotFound) {
		l.Debug("token subject unknown", slog.String("sub", claims.Subject))
		return domain.User{}, ErrUnauthorized
	}
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// ChangePassword re-checks current for user and stores a hash of next.
func (s *AuthService) ChangePassword(ctx context.Context, user domain.User, current, next string) error {
	if _, err := s.Authenticate(ctx, user.Username, current); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return ErrBadCredential
		}
		return err
	}

	hash, err := hashNewPassword(next)
	if err != nil {
		return err
	}

	ok, err := s.Store.Users().UpdatePasswordHash(ctx, user.Username, hash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserVanished
	}

	slogx.FromContext(ctx).Info("password changed", slog.String("username", user.Username))
	return nil
}

func (s *AuthService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *AuthService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

func hashNewPassword(password string) (string, error) {
	hash, err := cryptox.HashPassword(password)
	if errors.Is(err, cryptox.ErrPasswordTooLong) {
		return "", validationError("password: too long (max 72 bytes)")
	}
	return hash, err
}
