// Package otp generates short numeric one-time codes.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Generator produces one-time codes.
type Generator interface {
	Generate() (string, error)
}

// Numeric generates fixed-length decimal codes, uniformly distributed and
// zero-padded, e.g. "042317" for 6 digits.
type Numeric struct {
	digits int
	max    *big.Int
}

// NewNumeric returns a generator for codes of the given digit length.
func NewNumeric(digits int) *Numeric {
	bound := big.NewInt(10)
	bound.Exp(bound, big.NewInt(int64(digits)), nil)

	return &Numeric{digits: digits, max: bound}
}

// Generate returns a new code read from crypto/rand.
func (n *Numeric) Generate() (string, error) {
	v, err := rand.Int(rand.Reader, n.max)
	if err != nil {
		return "", fmt.Errorf("otp: read random: %w", err)
	}

	return fmt.Sprintf("%0*d", n.digits, v), nil
}
