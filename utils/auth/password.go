package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("password does not match")
)

// MinPasswordLength applies to registration, change-password and the seeded
// admin credential alike. Login never length-checks: a stored credential is
// verified as-is.
const MinPasswordLength = 8

// bcrypt cost for every credential hash. 12 keeps a verify around 250ms,
// which caps offline guessing without making login sluggish.
const hashCost = 12

// HashPassword enforces the minimum length and returns a salted bcrypt hash
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// VerifyPassword compares a stored hash against a presented password. Any
// mismatch, including an empty password, comes back as ErrPasswordMismatch.
func VerifyPassword(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}
