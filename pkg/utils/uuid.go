package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// NewSessionKey generates an opaque key for a storefront session cookie.
func NewSessionKey() string {
	return strings.ReplaceAll(uuid.New().String()+uuid.New().String(), "-", "")
}
