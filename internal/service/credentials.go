package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/task-manager/internal/validators"
	"golang.org/x/crypto/bcrypt"
)

type credentialService struct {
	cost int
}

// NewCredentialService returns a bcrypt based CredentialService. A cost
// outside the range accepted by bcrypt falls back to bcrypt.DefaultCost.
func NewCredentialService(cost int) CredentialService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &credentialService{cost: cost}
}

func (c *credentialService) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), c.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %w", ErrValidation, validators.ErrPasswordTooLong)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPasswordHashFailed, err)
	}
	return string(digest), nil
}

func (c *credentialService) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

