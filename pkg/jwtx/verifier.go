package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a token and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// ErrInvalidToken is the root of every verification failure; callers that
// only need a yes/no check errors.Is against it.
var ErrInvalidToken = errors.New("jwtx: invalid token")

var (
	ErrMalformed      = fmt.Errorf("%w: malformed", ErrInvalidToken)
	ErrInvalidSig     = fmt.Errorf("%w: signature mismatch", ErrInvalidToken)
	ErrAlgMismatch    = fmt.Errorf("%w: algorithm mismatch", ErrInvalidToken)
	ErrExpired        = fmt.Errorf("%w: expired", ErrInvalidToken)
	ErrNotYetValid    = fmt.Errorf("%w: not yet valid", ErrInvalidToken)
	ErrMissingSubject = fmt.Errorf("%w: missing subject", ErrInvalidToken)
	ErrInvalidClaim   = fmt.Errorf("%w: invalid claims", ErrInvalidToken)
)

// Verify checks the signature, algorithm and expiry of token. A token is
// expired once the clock reaches exp, at one second precision. The typ claim
// is returned untouched; callers decide whether it matters.
func (s *HMACSigner) Verify(token string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, ErrAlgMismatch
		}
		return s.secret, nil
	})
	if err != nil {
		return Claims{}, classify(err)
	}

	if claims.Subject == "" {
		return Claims{}, ErrMissingSubject
	}
	return claims, nil
}

// classify maps library errors onto the package sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, ErrAlgMismatch):
		return ErrAlgMismatch
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	default:
		return fmt.Errorf("%w: %v", ErrInvalidClaim, err)
	}
}
