package jwtx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is anything that can mint session tokens.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// DefaultAlg is used when no algorithm is configured.
const DefaultAlg = "HS256"

// ErrUnsupportedAlg is returned for algorithms other than HS256/HS384/HS512.
var ErrUnsupportedAlg = errors.New("jwtx: unsupported signing algorithm")

// ErrEmptySecret is returned when the shared secret is blank.
var ErrEmptySecret = errors.New("jwtx: empty signing secret")

// HMACSigner signs and verifies tokens with a shared secret. It is safe for
// concurrent use.
type HMACSigner struct {
	method *jwt.SigningMethodHMAC
	secret []byte
	now    func() time.Time
}

// Option configures an HMACSigner.
type Option func(*HMACSigner)

// WithClock overrides the time source used for iat, exp and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *HMACSigner) { s.now = now }
}

// NewHMACSigner returns a signer for alg (HS256, HS384 or HS512; blank means
// HS256) keyed by secret.
func NewHMACSigner(secret []byte, alg string, opts ...Option) (*HMACSigner, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	var method *jwt.SigningMethodHMAC
	switch strings.ToUpper(strings.TrimSpace(alg)) {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlg, alg)
	}

	s := &HMACSigner{
		method: method,
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *HMACSigner) Alg() string { return s.method.Alg() }

// Sign serialises and signs claims.
func (s *HMACSigner) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// IssueAccess mints an access token for subject expiring after ttl.
func (s *HMACSigner) IssueAccess(subject string, ttl time.Duration) (string, Claims, error) {
	return s.issue(subject, "", ttl)
}

// IssueRefresh mints a refresh token (typ=refresh) for subject.
func (s *HMACSigner) IssueRefresh(subject string, ttl time.Duration) (string, Claims, error) {
	return s.issue(subject, TypeRefresh, ttl)
}

func (s *HMACSigner) issue(subject, typ string, ttl time.Duration) (string, Claims, error) {
	if subject == "" {
		return "", Claims{}, ErrMissingSubject
	}
	claims := NewClaims(subject, typ, ttl, s.now().UTC())
	tok, err := s.Sign(claims)
	if err != nil {
		return "", Claims{}, fmt.Errorf("jwtx: sign: %w", err)
	}
	return tok, claims, nil
}
