// Package cryptox holds the credential store: salted one-way password hashing
// and verification.
package cryptox

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// bcryptMaxInput is the number of bytes bcrypt actually consumes.
const bcryptMaxInput = 72

// HashCost is the bcrypt work factor used for new hashes.
var HashCost = bcrypt.DefaultCost

// prepare maps a password to the bytes fed into bcrypt. Inputs over the
// bcrypt limit are reduced to a SHA-256 digest so that no part of a long
// password is silently ignored.
func prepare(password string) []byte {
	if len(password) <= bcryptMaxInput {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// HashPassword returns a salted bcrypt hash of password. Two calls with the
// same input yield different hashes. Empty input is accepted.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword(prepare(password), HashCost)
}

// VerifyPassword reports whether password produced hash. Malformed hashes
// simply do not verify.
func VerifyPassword(password string, hash []byte) bool {
	if len(hash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, prepare(password)) == nil
}
