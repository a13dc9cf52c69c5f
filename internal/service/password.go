package service

import (
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const (
	// bcrypt cost factor (10-14 recommended for production)
	defaultBcryptCost = 12

	// bcrypt ignores input past 72 bytes, so longer passwords are refused
	maxPasswordBytes = 72

	maxEmailLength = 254
)

// passwordHasher wraps bcrypt at a fixed cost
type passwordHasher struct {
	cost int

	dummyOnce sync.Once
	dummyHash []byte
}

func newPasswordHasher(cost int) *passwordHasher {
	if cost == 0 {
		cost = defaultBcryptCost
	}
	return &passwordHasher{cost: cost}
}

func (h *passwordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *passwordHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Burn performs a comparison against a throwaway hash so a login for an
// unknown email costs as much as one with a wrong password.
func (h *passwordHasher) Burn(password string) {
	h.dummyOnce.Do(func() {
		h.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("wellnessflow-dummy-password"), h.cost)
	})
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
}

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func isValidEmail(email string) bool {
	// Basic email validation
	if email == "" {
		return false
	}
	if len(email) > maxEmailLength {
		return false
	}
	atIndex := strings.Index(email, "@")
	if atIndex < 1 {
		return false
	}
	if strings.Count(email, "@") != 1 {
		return false
	}
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex < atIndex+2 {
		return false
	}
	if dotIndex >= len(email)-1 {
		return false
	}
	return !strings.ContainsAny(email, " \t\r\n")
}
