package teamservice

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const (
	teamPasswordLength   = 6
	teamPasswordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// generateTeamPassword returns a short random secret shown to the lead
// exactly once. Only its bcrypt hash is persisted.
func generateTeamPassword() (string, error) {
	buf := make([]byte, teamPasswordLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(teamPasswordAlphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to generate team password: %w", err)
		}
		buf[i] = teamPasswordAlphabet[n.Int64()]
	}
	return string(buf), nil
}

func hashTeamPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash team password: %w", err)
	}
	return string(hash), nil
}

// VerifyTeamPassword reports whether password matches the stored hash.
func VerifyTeamPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
