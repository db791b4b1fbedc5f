package identity

import (
	"errors"

	"baby-tracker-go/internal/domain/apperr"
	"golang.org/x/crypto/bcrypt"
)

const dummyPassword = "baby-tracker-timing-equalizer"

// Passwords hashes and verifies credentials with bcrypt.
type Passwords struct {
	cost      int
	dummyHash []byte
}

func NewPasswords(cost int) (*Passwords, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), cost)
	if err != nil {
		return nil, err
	}
	return &Passwords{cost: cost, dummyHash: dummy}, nil
}

func (p *Passwords) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperr.Invalid(err)
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify returns ErrInvalidCredentials on mismatch.
func (p *Passwords) Verify(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidCredentials
	}
	return err
}

// Burn spends one comparison on a fixed hash so a lookup miss costs the same
// as a wrong password.
func (p *Passwords) Burn(password string) {
	_ = bcrypt.CompareHashAndPassword(p.dummyHash, []byte(password))
}
