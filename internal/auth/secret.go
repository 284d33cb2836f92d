// Package auth provides the admin access gate: secret hashing,
// verification, and session token generation.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters (OWASP 2024 recommended minimum).
const (
	argon2Time    = 3
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	argon2SaltLen = 16
)

var (
	// ErrInvalidHash indicates the hash format is invalid.
	ErrInvalidHash = errors.New("invalid hash format")
	// ErrIncompatibleVersion indicates the hash version is not supported.
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
	// ErrNoCredentials indicates no admin secret is configured.
	ErrNoCredentials = errors.New("no admin credentials configured")
)

// HashSecret creates an Argon2id hash of the given secret.
// Returns the hash in PHC string format.
func HashSecret(secret string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey(
		[]byte(secret),
		salt,
		argon2Time,
		argon2Memory,
		argon2Threads,
		argon2KeyLen,
	)

	// PHC string format: $argon2id$v=19$m=65536,t=3,p=4$<salt>$<hash>
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Threads,
		b64Salt,
		b64Hash,
	), nil
}

// VerifySecret checks if the secret matches the PHC-encoded hash.
// Uses constant-time comparison to prevent timing attacks.
func VerifySecret(secret, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return false, ErrInvalidHash
	}

	if parts[1] != "argon2id" {
		return false, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, ErrInvalidHash
	}
	if version != argon2.Version {
		return false, ErrIncompatibleVersion
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrInvalidHash
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, ErrInvalidHash
	}

	computedHash := argon2.IDKey(
		[]byte(secret),
		salt,
		time,
		memory,
		threads,
		uint32(len(expectedHash)),
	)

	return subtle.ConstantTimeCompare(computedHash, expectedHash) == 1, nil
}

// Verifier checks an operator-supplied secret against configured
// credentials. The secret arrives from the environment (rotatable by
// redeploy) rather than living in source.
type Verifier struct {
	hash      string // Argon2id PHC string, preferred
	plaintext string // Development fallback
}

// NewVerifier builds a Verifier from an Argon2id hash, a plaintext
// fallback, or both. The hash takes precedence when set.
func NewVerifier(hash, plaintext string) (*Verifier, error) {
	if hash == "" && plaintext == "" {
		return nil, ErrNoCredentials
	}
	if hash != "" {
		// Fail fast on a malformed hash instead of rejecting every login.
		if _, err := VerifySecret("", hash); err != nil {
			return nil, fmt.Errorf("parse admin secret hash: %w", err)
		}
	}
	return &Verifier{hash: hash, plaintext: plaintext}, nil
}

// Verify reports whether the supplied secret matches the configured
// credential. Comparison is constant-time in both modes.
func (v *Verifier) Verify(secret string) bool {
	if v.hash != "" {
		match, err := VerifySecret(secret, v.hash)
		return err == nil && match
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(v.plaintext)) == 1
}
