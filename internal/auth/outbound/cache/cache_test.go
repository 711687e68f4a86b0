package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ramadhaner/authapi/internal/auth/entity"
	"github.com/ramadhaner/authapi/internal/pkg/goerror"
	"github.com/ramadhaner/authapi/internal/pkg/instrument"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCache(client, instrument.NewNoop()), srv
}

func TestCache_SetAndGetTokenAccount(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	ta := entity.TokenAccount{
		TokenID:     77,
		TokenDigest: "abc123",
		AccountID:   42,
		Email:       "jane@example.com",
		FullName:    "Jane Doe",
	}

	if err := c.SetTokenAccount(ctx, ta, time.Minute); err != nil {
		t.Fatalf("SetTokenAccount() error = %v", err)
	}

	got, err := c.GetTokenAccount(ctx, "abc123")
	if err != nil {
		t.Fatalf("GetTokenAccount() error = %v", err)
	}
	if *got != ta {
		t.Errorf("GetTokenAccount() = %+v, want %+v", *got, ta)
	}

	t.Run("entry expires with the ttl", func(t *testing.T) {
		srv.FastForward(2 * time.Minute)

		_, err := c.GetTokenAccount(ctx, "abc123")
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Errorf("GetTokenAccount() error = %v, want ErrNotFound", err)
		}
	})
}

func TestCache_GetTokenAccount_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	_, err := c.GetTokenAccount(context.Background(), "no-such-digest")
	if !errors.Is(err, goerror.ErrNotFound) {
		t.Errorf("GetTokenAccount() error = %v, want ErrNotFound", err)
	}
}

func TestCache_DeleteTokenAccounts(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	for _, digest := range []string{"d1", "d2", "d3"} {
		ta := entity.TokenAccount{TokenID: 1, TokenDigest: digest, AccountID: 42}
		if err := c.SetTokenAccount(ctx, ta, time.Minute); err != nil {
			t.Fatalf("SetTokenAccount(%s) error = %v", digest, err)
		}
	}

	if err := c.DeleteTokenAccounts(ctx, "d1", "d3"); err != nil {
		t.Fatalf("DeleteTokenAccounts() error = %v", err)
	}

	if _, err := c.GetTokenAccount(ctx, "d1"); !errors.Is(err, goerror.ErrNotFound) {
		t.Errorf("d1 still cached, error = %v", err)
	}
	if _, err := c.GetTokenAccount(ctx, "d2"); err != nil {
		t.Errorf("d2 dropped, error = %v", err)
	}
	if _, err := c.GetTokenAccount(ctx, "d3"); !errors.Is(err, goerror.ErrNotFound) {
		t.Errorf("d3 still cached, error = %v", err)
	}

	t.Run("no digests is a no-op", func(t *testing.T) {
		if err := c.DeleteTokenAccounts(ctx); err != nil {
			t.Errorf("DeleteTokenAccounts() error = %v", err)
		}
	})
}
