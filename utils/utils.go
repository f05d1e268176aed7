package utils

import (
	"strconv"
	"strings"

	"vms/config"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a staff password with the configured bcrypt cost.
func HashPassword(password string) (string, error) {
	cost := config.AppConfig.SaltRound
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plain password.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewContractorID returns a fresh opaque contractor identifier.
func NewContractorID() string {
	return uuid.NewString()
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserSubject is the token subject of a staff user.
func UserSubject(id uint) string {
	return "user:" + strconv.FormatUint(uint64(id), 10)
}
