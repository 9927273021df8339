package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	DuelCodeLength   = 6
	duelCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateDuelCode returns a fresh upper-case alphanumeric join code
func GenerateDuelCode() (string, error) {
	var sb strings.Builder
	sb.Grow(DuelCodeLength)
	max := big.NewInt(int64(len(duelCodeAlphabet)))
	for i := 0; i < DuelCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(duelCodeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// NormalizeDuelCode upper-cases a user supplied code so it compares
// against generated codes
func NormalizeDuelCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
