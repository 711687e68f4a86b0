package hash

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashAndVerify(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost, "pepper")

	hashed, err := h.Hash("s3cret-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hashed == "" {
		t.Fatal("Hash() returned empty string")
	}

	t.Run("matching plaintext verifies", func(t *testing.T) {
		if !h.Verify(hashed, "s3cret-password") {
			t.Error("Verify() = false, want true")
		}
	})

	t.Run("wrong plaintext fails", func(t *testing.T) {
		if h.Verify(hashed, "wrong-password") {
			t.Error("Verify() = true, want false")
		}
	})

	t.Run("different pepper fails", func(t *testing.T) {
		other := NewBcrypt(bcrypt.MinCost, "another-pepper")
		if other.Verify(hashed, "s3cret-password") {
			t.Error("Verify() = true, want false")
		}
	})
}

func TestArgon2id_HashAndVerify(t *testing.T) {
	h := NewArgon2id("pepper")

	hashed, err := h.Hash("123456")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !strings.HasPrefix(hashed, "$argon2id$") {
		t.Fatalf("Hash() = %q, want argon2id encoded form", hashed)
	}

	t.Run("matching plaintext verifies", func(t *testing.T) {
		if !h.Verify(hashed, "123456") {
			t.Error("Verify() = false, want true")
		}
	})

	t.Run("wrong plaintext fails", func(t *testing.T) {
		if h.Verify(hashed, "654321") {
			t.Error("Verify() = true, want false")
		}
	})

	t.Run("same plaintext hashes differently", func(t *testing.T) {
		again, err := h.Hash("123456")
		if err != nil {
			t.Fatalf("Hash() error = %v", err)
		}
		if again == hashed {
			t.Error("two hashes of the same plaintext are identical, want fresh salt")
		}
	})

	t.Run("malformed hash fails", func(t *testing.T) {
		if h.Verify("not-an-encoded-hash", "123456") {
			t.Error("Verify() = true, want false")
		}
	})

	t.Run("empty inputs fail", func(t *testing.T) {
		if h.Verify("", "123456") || h.Verify(hashed, "") {
			t.Error("Verify() accepted empty input")
		}
	})
}

func TestHMACSHA256_HashAndVerify(t *testing.T) {
	h := NewHMACSHA256("signing-secret")

	digest, err := h.Hash("some-opaque-token")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	t.Run("digest is hex encoded sha256", func(t *testing.T) {
		if len(digest) != 64 {
			t.Errorf("len(digest) = %d, want 64", len(digest))
		}
	})

	t.Run("deterministic for the same input", func(t *testing.T) {
		again, _ := h.Hash("some-opaque-token")
		if again != digest {
			t.Errorf("Hash() = %q, want %q", again, digest)
		}
	})

	t.Run("matching plaintext verifies", func(t *testing.T) {
		if !h.Verify(digest, "some-opaque-token") {
			t.Error("Verify() = false, want true")
		}
	})

	t.Run("different secret produces different digest", func(t *testing.T) {
		other := NewHMACSHA256("other-secret")
		otherDigest, _ := other.Hash("some-opaque-token")
		if otherDigest == digest {
			t.Error("digests match across secrets, want distinct")
		}
	})
}
