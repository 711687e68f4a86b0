// Package hash provides helpers for hashing and verifying secrets.
//
// Typical usage is for password hashing: store only the hash, then verify user
// input by comparing the plaintext against the stored hash. Implementations
// (like bcrypt) live in this package behind a small interface.
package hash

// Hash hashes plaintext secrets and verifies plaintexts against stored
// hashes. Implementations decide the encoding of the hashed form.
type Hash interface {
	Hash(plaintext string) (string, error)
	Verify(hashed, plaintext string) bool
}
