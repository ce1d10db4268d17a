package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMismatch means the password does not match the hash.
	ErrMismatch = errors.New("cryptox: password does not match")
	// ErrUnknownScheme means the hash was not produced by a supported scheme.
	ErrUnknownScheme = errors.New("cryptox: unknown hash scheme")
	// ErrMalformedHash means the hash has a known prefix but cannot be parsed.
	ErrMalformedHash = errors.New("cryptox: malformed hash")
	// ErrPasswordTooLong mirrors bcrypt's 72 byte input limit.
	ErrPasswordTooLong = errors.New("cryptox: password longer than 72 bytes")
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// BcryptCost is the work factor for new hashes. Stored hashes below it are
// reported by NeedsRehash.
const BcryptCost = bcrypt.DefaultCost

// Legacy argon2id parameters. Hashes in this format still verify but are
// upgraded to bcrypt on the next successful login.
const (
	argonTime    uint32 = 3
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 2
	argonKeyLen  uint32 = 32
	argonSaltLen        = 16
)

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("cryptox: bcrypt: %w", err)
	}
	return string(h), nil
}

// VerifyPassword returns nil when password matches encodedHash. Both bcrypt
// and the legacy PHC argon2id format are accepted.
func VerifyPassword(password, encodedHash string) error {
	switch {
	case isBcrypt(encodedHash):
		// bcrypt only reads the first 72 bytes; anything longer could never
		// have been hashed, so it cannot match.
		if len(password) > MaxPasswordBytes {
			return ErrMismatch
		}
		err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
		switch {
		case err == nil:
			return nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrPasswordTooLong):
			return ErrMismatch
		default:
			return fmt.Errorf("%w: %v", ErrMalformedHash, err)
		}
	case strings.HasPrefix(encodedHash, "$argon2id$"):
		return verifyArgon2id(password, encodedHash)
	default:
		return ErrUnknownScheme
	}
}

// NeedsRehash reports whether encodedHash should be replaced with a fresh
// HashPassword result: legacy schemes and bcrypt below BcryptCost.
func NeedsRehash(encodedHash string) bool {
	if !isBcrypt(encodedHash) {
		return true
	}
	cost, err := bcrypt.Cost([]byte(encodedHash))
	return err != nil || cost < BcryptCost
}

func isBcrypt(h string) bool {
	return strings.HasPrefix(h, "$2a$") || strings.HasPrefix(h, "$2b$") || strings.HasPrefix(h, "$2y$")
}

// HashArgon2id produces the legacy PHC string
// $argon2id$v=19$m=<mem>,t=<time>,p=<threads>$<salt>$<key>.
// New hashes should come from HashPassword; this exists for importing and
// testing accounts that were created before the switch to bcrypt.
func HashArgon2id(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func verifyArgon2id(password, encodedHash string) error {
	// ["", "argon2id", "v=19", "m=X,t=Y,p=Z", salt, key]
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return ErrMalformedHash
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("%w: params: %v", ErrMalformedHash, err)
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return fmt.Errorf("%w: key", ErrMalformedHash)
	}

	got := argon2.IDKey([]byte(password), salt, iters, mem, par, uint32(len(want))) // #nosec G115
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}
