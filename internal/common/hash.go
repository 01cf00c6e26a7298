package common

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserID returns the hex SHA-256 digest of a user id. Log lines carry
// only the digest; raw user identifiers must never reach the logs.
func HashUserID(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])
}
