// Package cryptox holds the password hashing used by the local credential
// store: an argon2id key derived from (password, salt) and a SHA-256
// verifier over that key.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/dmitrijs2005/bijligrid/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of salts produced by NewSalt.
const SaltSize = 16

func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// HashPassword returns the verifier stored for password under salt.
func HashPassword(password []byte, salt []byte) []byte {
	key := DeriveKey(password, salt)
	defer common.WipeByteArray(key)
	return MakeVerifier(key)
}

// CheckPassword reports whether password hashes to verifier under salt.
// The comparison is constant-time.
func CheckPassword(password, salt, verifier []byte) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(candidate, verifier) == 1
}
