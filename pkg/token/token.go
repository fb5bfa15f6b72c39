// Package token issues the opaque access codes encoded into booking QR
// images. Codes carry no identifying information; verification always
// goes through a booking lookup.
package token

import (
	"strings"

	"github.com/google/uuid"
)

// NewAccessToken returns a random, URL-safe access code. Uniqueness
// comes from UUIDv4's 122 bits of randomness.
func NewAccessToken() string {
	return uuid.NewString()
}

// IsWellFormed reports whether a presented code could have been issued
// by NewAccessToken. It says nothing about whether a booking exists for
// it.
func IsWellFormed(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	_, err := uuid.Parse(code)
	return err == nil
}
