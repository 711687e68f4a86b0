// Package cache keeps resolved bearer tokens in Redis so hot-path
// authentication does not hit Postgres on every request. Entries are bounded
// by a short TTL and dropped eagerly on revocation.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ramadhaner/authapi/internal/auth/entity"
	"github.com/ramadhaner/authapi/internal/pkg/goerror"
	"github.com/ramadhaner/authapi/internal/pkg/instrument"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyPrefix = "auth:token:"

type Cache struct {
	client *redis.Client
	ins    instrument.Instrumentation
}

func NewCache(client *redis.Client, ins instrument.Instrumentation) *Cache {
	return &Cache{client: client, ins: ins}
}

func (c *Cache) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("auth.outbound.cache").Start(ctx, name)
}

func (c *Cache) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (c *Cache) GetTokenAccount(ctx context.Context, digest string) (out *entity.TokenAccount, err error) {
	ctx, span := c.startSpan(ctx, "GetTokenAccount")
	defer func() { c.endSpan(span, err) }()

	raw, err := c.client.Get(ctx, keyPrefix+digest).Bytes()
	if errors.Is(err, redis.Nil) {
		err = goerror.ErrNotFound
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	var ta entity.TokenAccount
	if err = json.Unmarshal(raw, &ta); err != nil {
		return nil, err
	}

	return &ta, nil
}

func (c *Cache) SetTokenAccount(ctx context.Context, ta entity.TokenAccount, ttl time.Duration) (err error) {
	ctx, span := c.startSpan(ctx, "SetTokenAccount")
	defer func() { c.endSpan(span, err) }()

	raw, err := json.Marshal(ta)
	if err != nil {
		return err
	}

	err = c.client.Set(ctx, keyPrefix+ta.TokenDigest, raw, ttl).Err()
	return err
}

func (c *Cache) DeleteTokenAccounts(ctx context.Context, digests ...string) (err error) {
	ctx, span := c.startSpan(ctx, "DeleteTokenAccounts")
	defer func() { c.endSpan(span, err) }()

	if len(digests) == 0 {
		return nil
	}

	keys := make([]string, 0, len(digests))
	for _, d := range digests {
		keys = append(keys, keyPrefix+d)
	}

	err = c.client.Del(ctx, keys...).Err()
	return err
}
