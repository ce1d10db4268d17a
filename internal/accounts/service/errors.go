package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrBadCredential      = errors.New("current password is incorrect")
	ErrUserVanished       = errors.New("user no longer exists")
	ErrValidation         = errors.New("validation_error")
	ErrDuplicateKey       = errors.New("duplicate_key")
)

// DetailError pairs one of the sentinels above with the message shown to the
// caller, e.g. ErrDuplicateKey with "Email already exists".
type DetailError struct {
	Kind   error
	Detail string
}

func (e *DetailError) Error() string { return e.Detail }
func (e *DetailError) Unwrap() error { return e.Kind }

func validationError(detail string) error {
	return &DetailError{Kind: ErrValidation, Detail: detail}
}

// Detail returns the caller facing message carried by err, or "".
func Detail(err error) string {
	var de *DetailError
	if errors.As(err, &de) {
		return de.Detail
	}
	return ""
}
