// Package auth provides credential utilities for API access.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
)

// Keys are uniform-random 128-bit values rendered as compact hex.
// Flight plan identifiers use the same scheme.
const KeyLen = 32 // hex encoded 16 bytes

var keyFormatRegex = regexp.MustCompile(`^[a-f0-9]{32}$`)

// NewKey generates a new opaque credential or identifier.
func NewKey() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ValidKeyFormat reports whether s looks like a server-issued key.
func ValidKeyFormat(s string) bool {
	return keyFormatRegex.MatchString(s)
}
