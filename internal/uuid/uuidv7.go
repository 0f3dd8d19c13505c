// Package uuid generates and checks record identifiers.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a UUIDv7 string. UUIDv7 leads with a millisecond timestamp, so
// new analysis records sort after older ones by primary key as well.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Entropy failure; a random v4 still yields a unique key.
		return googleuuid.New().String()
	}
	return id.String()
}

// IsValid reports whether s is a well-formed UUID in canonical form.
func IsValid(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := googleuuid.Parse(s)
	return err == nil
}

// Version returns the UUID version of s, or 0 when s is not a UUID.
func Version(s string) int {
	id, err := googleuuid.Parse(s)
	if err != nil {
		return 0
	}
	return int(id.Version())
}
