package identity

import "time"

// User represents a registered wallet owner. The ID is derived from the PIN.
type User struct {
	ID           string
	PINHash      []byte
	PasswordHash []byte // nil when registered without a password
	CreatedAt    time.Time
}

// Credentials request structure.
type Credentials struct {
	PIN      string
	Password string
}
