package identity

import (
	"crypto/sha256"
	"encoding/hex"
)

const userIDLength = 16

// DeriveUserID maps a PIN to its stable user identifier: the first 16 hex
// characters of SHA-256(pin). Two PINs with the same digest prefix share an
// account.
func DeriveUserID(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])[:userIDLength]
}
