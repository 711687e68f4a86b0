package uid

import (
	"encoding/hex"
	"testing"
)

func TestSecretGenerator_Generate(t *testing.T) {
	gen := NewSecretGenerator()

	t.Run("encodes 32 bytes as lowercase hex", func(t *testing.T) {
		secret := gen.Generate()

		if len(secret) != 64 {
			t.Fatalf("len = %d, want 64", len(secret))
		}
		raw, err := hex.DecodeString(secret)
		if err != nil {
			t.Fatalf("not hex: %v", err)
		}
		if len(raw) != 32 {
			t.Fatalf("decoded %d bytes, want 32", len(raw))
		}
		for _, c := range secret {
			if c >= 'A' && c <= 'F' {
				t.Fatalf("uppercase hex digit %q in %q", c, secret)
			}
		}
	})

	t.Run("every region of the secret is random", func(t *testing.T) {
		// Two secrets from the same process must not share a prefix. A
		// generator that derives part of the value from the clock, host or
		// pid would repeat its leading bytes across draws.
		a := gen.Generate()
		b := gen.Generate()

		if a == b {
			t.Fatal("two draws produced the same secret")
		}
		if a[:28] == b[:28] {
			t.Errorf("draws share the 14-byte prefix %q", a[:28])
		}
	})
}
