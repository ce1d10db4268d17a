package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default lifetimes. Both are overridable from configuration.
const (
	DefaultAccessTokenTTL  = 30 * time.Minute
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// TypeRefresh marks refresh tokens in the "typ" claim. Access tokens carry
// no typ at all.
const TypeRefresh = "refresh"

// Claims are the session token claims: sub, iat and exp plus an optional typ.
type Claims struct {
	jwt.RegisteredClaims

	Type string `json:"typ,omitempty"`
}

// NewClaims builds claims for subject valid from now for ttl.
func NewClaims(subject, typ string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Type: typ,
	}
}

// IsRefresh reports whether the token was minted as a refresh token.
func (c Claims) IsRefresh() bool { return c.Type == TypeRefresh }

// Expiry returns the exp claim, or the zero time when absent.
func (c Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
