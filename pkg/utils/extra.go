package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// GenerateRandomToken returns length random hex characters.
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, (length+1)/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes)[:length], nil
}

// Reference builds a short human-readable order reference such as
// KIT-3F9A1C0B.
func Reference(prefix string) (string, error) {
	token, err := GenerateRandomToken(8)
	if err != nil {
		return "", err
	}
	return prefix + "-" + strings.ToUpper(token), nil
}
