// Package cryptox provides password hashing for user credentials.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters, following the RFC 9106 low-memory profile.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

// ErrMismatch is returned by VerifyPassword when the password does not match.
var ErrMismatch = errors.New("cryptox: password does not match")

// HashPassword generates a PHC-format Argon2id hash string including the salt
// and the parameters used, so parameters can change without invalidating
// stored hashes.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassword compares a plaintext password against a PHC-style Argon2id
// hash in constant time. Returns ErrMismatch on a wrong password and a
// descriptive error on a malformed hash.
func VerifyPassword(password, encodedHash string) error {
	var (
		mem, iters uint32
		par        uint8
		b64Salt    string
		b64Hash    string
	)

	_, err := fmt.Sscanf(encodedHash, "$argon2id$v=19$m=%d,t=%d,p=%d$%s", &mem, &iters, &par, &b64Salt)
	if err != nil {
		return fmt.Errorf("cryptox: invalid hash format: %w", err)
	}

	// Sscanf %s is greedy; split the trailing "salt$hash" pair manually.
	for i := range len(b64Salt) {
		if b64Salt[i] == '$' {
			b64Hash = b64Salt[i+1:]
			b64Salt = b64Salt[:i]
			break
		}
	}
	if b64Hash == "" {
		return errors.New("cryptox: invalid hash format: missing digest")
	}

	salt, err := base64.RawStdEncoding.DecodeString(b64Salt)
	if err != nil {
		return fmt.Errorf("cryptox: invalid hash format: bad salt: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(b64Hash)
	if err != nil {
		return fmt.Errorf("cryptox: invalid hash format: bad digest: %w", err)
	}

	got := argon2.IDKey([]byte(password), salt, iters, mem, par, uint32(len(want))) // #nosec G115

	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}
