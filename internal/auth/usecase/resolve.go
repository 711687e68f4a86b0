package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ramadhaner/authapi/internal/pkg/goerror"
	"github.com/ramadhaner/authapi/internal/pkg/session"
)

// ErrTokenInvalid is the single failure Resolve reports; it never
// distinguishes malformed, unknown and revoked secrets.
var ErrTokenInvalid = errors.New("invalid bearer token")

const tokenSecretLength = 64

// Resolve digests a presented secret and looks it up, cache first, then the
// store. It backs the router's authentication middleware.
func (s *Usecase) Resolve(ctx context.Context, secret string) (*session.Session, error) {
	ctx, span := s.startSpan(ctx, "Resolve")
	defer span.End()

	if len(secret) != tokenSecretLength {
		return nil, ErrTokenInvalid
	}

	digest, err := s.hmac.Hash(secret)
	if err != nil {
		slog.ErrorContext(ctx, "failed to digest presented token", "error", err)
		return nil, ErrTokenInvalid
	}

	ta, err := s.repoCache.GetTokenAccount(ctx, digest)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "token cache lookup failed", "error", err)
	}

	if ta == nil {
		ta, err = s.repoDB.GetTokenAccountByDigest(ctx, digest)
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, ErrTokenInvalid
		}
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo get token by digest", "error", err)
			return nil, ErrTokenInvalid
		}

		ttl := s.cfg.GetMinute("modules.auth.token_cache_ttl_minutes")
		if err := s.repoCache.SetTokenAccount(ctx, *ta, ttl); err != nil {
			slog.WarnContext(ctx, "failed to cache resolved token", "account_id", ta.AccountID, "error", err)
		}
	}

	return &session.Session{
		AccountID:   ta.AccountID,
		TokenID:     ta.TokenID,
		TokenDigest: ta.TokenDigest,
		Email:       ta.Email,
		FullName:    ta.FullName,
	}, nil
}
