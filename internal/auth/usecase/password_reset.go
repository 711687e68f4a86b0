package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ramadhaner/authapi/internal/pkg/goerror"
)

type PasswordResetInput struct {
	Email                string `validate:"required,email"`
	Code                 string `validate:"required,len=6,number"`
	Password             string `validate:"required,password"`
	PasswordConfirmation string `validate:"required,eqfield=Password"`
}

func invalidOrExpiredCode() error {
	return goerror.NewBusiness("invalid or expired code", goerror.CodeInvalidInput)
}

// PasswordReset verifies the code, replaces the password and consumes the
// code in one transaction, then revokes every bearer token of the account.
// Missing entry, wrong code, expired entry and unknown account all collapse
// into the same failure.
func (s *Usecase) PasswordReset(ctx context.Context, in PasswordResetInput) error {
	ctx, span := s.startSpan(ctx, "PasswordReset")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	email := strings.TrimSpace(strings.ToLower(in.Email))

	entry, err := s.repoDB.GetPasswordReset(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "reset attempted without pending code", "email", email)
		return invalidOrExpiredCode()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get reset code", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	// A wrong code keeps the entry; the caller may retry within the window.
	if !s.argon2id.Verify(entry.OTPHash, in.Code) {
		slog.WarnContext(ctx, "reset attempted with wrong code", "email", email)
		return invalidOrExpiredCode()
	}

	if s.clock.Now().Sub(entry.CreatedAt) > s.otpTTL() {
		if err := s.repoDB.DeletePasswordReset(ctx, email); err != nil {
			slog.WarnContext(ctx, "failed to delete expired reset code", "email", email, "error", err)
		}

		slog.WarnContext(ctx, "reset attempted with expired code", "email", email)
		return invalidOrExpiredCode()
	}

	account, err := s.repoDB.GetAccountAuthInfoByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "pending reset code without account", "email", email)
		return invalidOrExpiredCode()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	newHash, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "account_id", account.ID, "error", err)
		return goerror.NewServer(err)
	}

	// Password replacement and code consumption commit together; a concurrent
	// reset with the same code loses the race and fails.
	if err := s.repoDB.ResetAccountPassword(ctx, account.ID, email, newHash); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			slog.WarnContext(ctx, "reset code consumed concurrently", "account_id", account.ID)
			return invalidOrExpiredCode()
		}

		slog.ErrorContext(ctx, "failed to repo reset account password", "account_id", account.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.revokeAllTokens(ctx, account.ID); err != nil {
		return goerror.NewServer(err)
	}

	return nil
}
