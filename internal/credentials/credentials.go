// Package credentials hashes and verifies passwords for account holders and
// administrators. Plaintext is never stored; digests are argon2id with a
// random per-call salt, encoded as base64(salt)$base64(hash).
package credentials

import (
	cryptorand "crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/crypto/argon2"
)

// MinPasswordLength is the policy floor checked before any hashing happens.
const MinPasswordLength = 8

// ErrPasswordTooShort signals a policy violation, not a storage problem.
var ErrPasswordTooShort = errors.New("password must be at least 8 characters")

func params() (time, memory uint32, threads uint8, keyLen, saltLen uint32) {
	viper.SetDefault("argon2.time", 1)
	viper.SetDefault("argon2.memory", 64*1024)
	viper.SetDefault("argon2.threads", 4)
	viper.SetDefault("argon2.key_length", 32)
	viper.SetDefault("argon2.salt_length", 16)

	return uint32(viper.GetInt("argon2.time")),
		uint32(viper.GetInt("argon2.memory")),
		uint8(viper.GetInt("argon2.threads")),
		uint32(viper.GetInt("argon2.key_length")),
		uint32(viper.GetInt("argon2.salt_length"))
}

// Hash derives a salted digest of password. Two calls with the same password
// produce different digests because the salt is random per call.
func Hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}

	time, memory, threads, keyLen, saltLen := params()

	salt := make([]byte, saltLen)
	if _, err := cryptorand.Read(salt); err != nil {
		return "", fmt.Errorf("salt generation failed: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, time, memory, threads, keyLen)
	return fmt.Sprintf("%s$%s",
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(hash)), nil
}

// Verify reports whether password matches the stored digest. A malformed
// digest is never an error to the caller: it is logged as an integrity
// warning and treated as a non-match.
func Verify(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 2 {
		log.Printf("[CREDENTIALS] Integrity warning: malformed stored digest")
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		log.Printf("[CREDENTIALS] Integrity warning: undecodable salt")
		return false
	}

	hash, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		log.Printf("[CREDENTIALS] Integrity warning: undecodable hash")
		return false
	}

	time, memory, threads, _, _ := params()
	computed := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(hash)))
	return subtle.ConstantTimeCompare(hash, computed) == 1
}
