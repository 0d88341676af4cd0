package identity

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("identity: invalid credentials")

type Passwords struct {
	cost int
}

func NewPasswords(cost int) Passwords {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	return Passwords{cost: cost}
}

func (p Passwords) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare returns ErrInvalidCredentials for any mismatch, including a malformed hash.
func (p Passwords) Compare(hash string, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
