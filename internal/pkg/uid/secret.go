package uid

import (
	"crypto/rand"
	"encoding/hex"
)

// SecretGenerator produces 256-bit bearer-token secrets: 32 bytes from
// crypto/rand, hex encoded to 64 characters. Every byte is random, so the
// output reveals nothing about the host, process, or issue time.
type SecretGenerator struct{}

// NewSecretGenerator returns a generator backed by crypto/rand.
func NewSecretGenerator() *SecretGenerator {
	return &SecretGenerator{}
}

// Generate returns a new 64-char lowercase hex secret. It panics if
// crypto/rand fails rather than ever return a predictable value.
func (g *SecretGenerator) Generate() string {
	var raw [32]byte
	if _, err := rand.Read(raw[:]); err != nil {
		panic("uid: crypto/rand unavailable: " + err.Error())
	}

	var buf [64]byte
	hex.Encode(buf[:], raw[:])
	return string(buf[:])
}
