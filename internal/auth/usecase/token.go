package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ramadhaner/authapi/internal/auth/entity"
	"github.com/ramadhaner/authapi/internal/pkg/goerror"
)

// issueTokenAttempts bounds regeneration when a digest collides with an
// existing row. With 256-bit secrets a single retry is already unreachable
// in practice.
const issueTokenAttempts = 3

// issueBearerToken mints an opaque secret for the account, stores its digest
// and returns the plaintext secret. This is the only moment the plaintext
// exists server-side.
func (s *Usecase) issueBearerToken(ctx context.Context, accountID int64) (string, error) {
	for range issueTokenAttempts {
		secret := s.oid.Generate()

		digest, err := s.hmac.Hash(secret)
		if err != nil {
			slog.ErrorContext(ctx, "failed to digest token secret", "account_id", accountID, "error", err)
			return "", err
		}

		err = s.repoDB.CreateBearerToken(ctx, entity.BearerToken{
			ID:        s.uid.Generate(),
			AccountID: accountID,
			Digest:    digest,
			CreatedAt: s.clock.Now(),
		})
		if errors.Is(err, goerror.ErrConflict) {
			slog.WarnContext(ctx, "token digest collision, regenerating", "account_id", accountID)
			continue
		}
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo create bearer token", "account_id", accountID, "error", err)
			return "", err
		}

		return secret, nil
	}

	return "", errors.New("could not issue a unique bearer token")
}

// revokeAllTokens deletes every token for the account and drops their cache
// entries so revocation takes effect immediately.
func (s *Usecase) revokeAllTokens(ctx context.Context, accountID int64) error {
	digests, err := s.repoDB.ListTokenDigestsByAccount(ctx, accountID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list token digests", "account_id", accountID, "error", err)
		return err
	}

	if _, err := s.repoDB.DeleteAllBearerTokens(ctx, accountID); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete all bearer tokens", "account_id", accountID, "error", err)
		return err
	}

	if len(digests) > 0 {
		if err := s.repoCache.DeleteTokenAccounts(ctx, digests...); err != nil {
			slog.WarnContext(ctx, "failed to drop token cache entries", "account_id", accountID, "error", err)
		}
	}

	return nil
}
