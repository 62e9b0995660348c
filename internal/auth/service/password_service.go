package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/crm/internal/errors"
)

type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

func (s *passwordService) Hash(plain string) (string, error) {
	hashed, err := s.hasher.Hash([]byte(plain))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hashed, nil
}

func (s *passwordService) Compare(plain, hash string) bool {
	if hash == "" {
		return false
	}
	ok, err := s.hasher.Verify([]byte(plain), hash)
	if err != nil {
		return false
	}
	return ok
}

// NewPasswordService creates a PasswordService using the Argon2id moderate policy.
func NewPasswordService() PasswordService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		panic(err)
	}

	return &passwordService{
		hasher: hasher,
	}
}
