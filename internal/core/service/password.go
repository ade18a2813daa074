package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// PasswordStrength grades a candidate password for new accounts.
type PasswordStrength string

const (
	StrengthNone   PasswordStrength = ""
	StrengthWeak   PasswordStrength = "weak"
	StrengthMedium PasswordStrength = "medium"
	StrengthStrong PasswordStrength = "strong"
)

const (
	generatedPasswordLength = 12
	passwordCharset         = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"
	passwordSymbols         = "!@#$%^&*"
)

// GradePassword scores pwd one point each for length >= 8, length >= 12,
// mixed case, a digit and a symbol. Two points or fewer is weak, four or
// fewer medium. An empty password has no grade.
func GradePassword(pwd string) PasswordStrength {
	if pwd == "" {
		return StrengthNone
	}

	var lower, upper, digit bool
	for _, r := range pwd {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}

	score := 0
	n := len([]rune(pwd))
	if n >= 8 {
		score++
	}
	if n >= 12 {
		score++
	}
	if lower && upper {
		score++
	}
	if digit {
		score++
	}
	if strings.ContainsAny(pwd, passwordSymbols) {
		score++
	}

	switch {
	case score <= 2:
		return StrengthWeak
	case score <= 4:
		return StrengthMedium
	default:
		return StrengthStrong
	}
}

// GeneratePassword returns a random 12 character password drawn uniformly
// from letters, digits and the symbols GradePassword rewards.
func GeneratePassword() (string, error) {
	limit := big.NewInt(int64(len(passwordCharset)))
	var b strings.Builder
	b.Grow(generatedPasswordLength)
	for range generatedPasswordLength {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		b.WriteByte(passwordCharset[idx.Int64()])
	}
	return b.String(), nil
}
