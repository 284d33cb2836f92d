package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// sessionTokenLen is the raw entropy of a session token in bytes.
const sessionTokenLen = 32

// NewSessionToken returns an opaque random session token,
// base64url-encoded without padding.
func NewSessionToken() (string, error) {
	raw := make([]byte, sessionTokenLen)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
