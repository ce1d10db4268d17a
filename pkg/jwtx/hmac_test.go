package jwtx_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// fakeClock is a settable time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newSigner(t *testing.T, alg string, clock *fakeClock) *jwtx.HMACSigner {
	t.Helper()
	s, err := jwtx.NewHMACSigner([]byte("test-secret"), alg, jwtx.WithClock(clock.Now))
	require.NoError(t, err)
	return s
}

func TestNewHMACSigner(t *testing.T) {
	t.Parallel()

	for _, alg := range []string{"", "HS256", "hs384", "HS512"} {
		s, err := jwtx.NewHMACSigner([]byte("k"), alg)
		require.NoError(t, err, alg)
		require.True(t, strings.HasPrefix(s.Alg(), "HS"))
	}

	_, err := jwtx.NewHMACSigner([]byte("k"), "RS256")
	require.ErrorIs(t, err, jwtx.ErrUnsupportedAlg)

	_, err = jwtx.NewHMACSigner(nil, "HS256")
	require.ErrorIs(t, err, jwtx.ErrEmptySecret)
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := newSigner(t, "HS256", clock)

	t.Run("access token", func(t *testing.T) {
		tok, issued, err := s.IssueAccess("alice", 30*time.Minute)
		require.NoError(t, err)
		require.False(t, issued.IsRefresh())

		claims, err := s.Verify(tok)
		require.NoError(t, err)
		require.Equal(t, "alice", claims.Subject)
		require.Empty(t, claims.Type)
		require.True(t, clock.Now().Add(30*time.Minute).Equal(claims.Expiry()))
		require.True(t, clock.Now().Equal(claims.IssuedAt.Time))
	})

	t.Run("refresh token", func(t *testing.T) {
		tok, _, err := s.IssueRefresh("alice", jwtx.DefaultRefreshTokenTTL)
		require.NoError(t, err)

		claims, err := s.Verify(tok)
		require.NoError(t, err)
		require.True(t, claims.IsRefresh())
		require.Equal(t, jwtx.TypeRefresh, claims.Type)
	})

	t.Run("empty subject is refused", func(t *testing.T) {
		_, _, err := s.IssueAccess("", time.Minute)
		require.ErrorIs(t, err, jwtx.ErrMissingSubject)
	})
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := newSigner(t, "HS256", clock)

	tok, _, err := s.IssueAccess("bob", time.Minute)
	require.NoError(t, err)

	clock.Advance(59 * time.Second)
	_, err = s.Verify(tok)
	require.NoError(t, err)

	// Valid strictly before exp, expired at exp.
	clock.Advance(time.Second)
	_, err = s.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrExpired)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}

func TestVerify_Rejections(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Now().UTC()}
	s := newSigner(t, "HS256", clock)
	good, _, err := s.IssueAccess("carol", time.Hour)
	require.NoError(t, err)

	other, err := jwtx.NewHMACSigner([]byte("another-secret"), "HS256", jwtx.WithClock(clock.Now))
	require.NoError(t, err)
	foreign, _, err := other.IssueAccess("carol", time.Hour)
	require.NoError(t, err)

	hs512 := newSigner(t, "HS512", clock)
	wrongAlg, _, err := hs512.IssueAccess("carol", time.Hour)
	require.NoError(t, err)

	noneTok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwtx.NewClaims("carol", "", time.Hour, clock.Now())).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noSub, err := s.Sign(jwtx.NewClaims("", "", time.Hour, clock.Now()))
	require.NoError(t, err)

	noExp := jwtx.NewClaims("carol", "", time.Hour, clock.Now())
	noExp.ExpiresAt = nil
	noExpTok, err := s.Sign(noExp)
	require.NoError(t, err)

	parts := strings.Split(good, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"garbage", "not-a-jwt", jwtx.ErrMalformed},
		{"empty", "", jwtx.ErrMalformed},
		{"other secret", foreign, jwtx.ErrInvalidSig},
		{"tampered payload", tampered, jwtx.ErrInvalidToken},
		{"other hmac alg", wrongAlg, jwtx.ErrAlgMismatch},
		{"alg none", noneTok, jwtx.ErrAlgMismatch},
		{"missing subject", noSub, jwtx.ErrMissingSubject},
		{"missing exp", noExpTok, jwtx.ErrInvalidClaim},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Verify(tt.token)
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, jwtx.ErrInvalidToken)
		})
	}
}
