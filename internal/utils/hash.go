package utils

import (
	"crypto/sha512"
	"encoding/hex"
)

// HashPassword returns the hex SHA-512 digest of a password.
func HashPassword(password string) string {
	sum := sha512.Sum512([]byte(password))
	return hex.EncodeToString(sum[:])
}
