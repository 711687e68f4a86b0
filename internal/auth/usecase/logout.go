package usecase

import (
	"context"
	"log/slog"

	"github.com/ramadhaner/authapi/internal/pkg/goerror"
)

// LogoutInput identifies the presented token explicitly; the HTTP layer
// fills it from the resolved session.
type LogoutInput struct {
	AccountID   int64  `validate:"required"`
	TokenID     int64  `validate:"required"`
	TokenDigest string `validate:"required"`
}

// Logout revokes exactly the presented token. Other sessions of the same
// account stay valid. Revoking an already-deleted token is a no-op.
func (s *Usecase) Logout(ctx context.Context, in LogoutInput) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.DeleteBearerToken(ctx, in.TokenID); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete bearer token", "account_id", in.AccountID, "token_id", in.TokenID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoCache.DeleteTokenAccounts(ctx, in.TokenDigest); err != nil {
		slog.WarnContext(ctx, "failed to drop token cache entry", "account_id", in.AccountID, "token_id", in.TokenID, "error", err)
	}

	return nil
}
