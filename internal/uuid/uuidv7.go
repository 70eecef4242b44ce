// Package uuid generates the opaque identifiers used for holdings and transactions.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a new time-ordered UUIDv7 string.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// The v7 generator only fails when the random source does.
		return googleuuid.New().String()
	}
	return id.String()
}

// Parse validates and normalizes a UUID string.
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid checks if a string is a valid UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
