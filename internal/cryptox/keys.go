// Package cryptox implements the password key-derivation scheme shared by
// client and server. The expensive derivation runs on the client only; the
// server stores (salt, derived key) and compares candidates byte-for-byte.
package cryptox

import (
	"crypto/sha512"
	"crypto/subtle"

	"github.com/dkurose/kotoba/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the width of the derived key and of the salt.
	KeySize = sha512.Size

	// Iterations is the PBKDF2 iteration count. Deliberately slow; raising it
	// only affects clients since derivation never runs server-side.
	Iterations = 100_000
)

// GenerateSalt returns a fresh random salt, KeySize bytes wide.
func GenerateSalt() []byte {
	return common.GenerateRandByteArray(KeySize)
}

// DeriveKey stretches password with salt using PBKDF2-HMAC-SHA512.
// Client-side only: the plaintext password must never reach the server.
func DeriveKey(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, Iterations, KeySize, sha512.New)
}

// VerifyKey compares the stored key against a candidate. The comparison
// always scans the full width regardless of where the first mismatch sits,
// so response timing does not leak the matching prefix length.
func VerifyKey(stored, candidate []byte) bool {
	return subtle.ConstantTimeCompare(stored, candidate) == 1
}
