package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSessionToken returns an opaque 256-bit random token. The token
// carries no claims; it is only meaningful as a lookup key into the
// sessions table.
func GenerateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
