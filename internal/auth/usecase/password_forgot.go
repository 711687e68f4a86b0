package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ramadhaner/authapi/internal/auth/entity"
	"github.com/ramadhaner/authapi/internal/pkg/goerror"
)

type PasswordForgotInput struct {
	Email string `validate:"required,email"`
}

// PasswordForgot issues a reset code for the account, replacing any code
// already pending for that email. The outcome is indistinguishable for
// unknown emails.
func (s *Usecase) PasswordForgot(ctx context.Context, in PasswordForgotInput) error {
	ctx, span := s.startSpan(ctx, "PasswordForgot")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	email := strings.TrimSpace(strings.ToLower(in.Email))

	if n, err := s.repoDB.SweepExpiredPasswordResets(ctx, s.clock.Now().Add(-s.otpTTL())); err != nil {
		slog.WarnContext(ctx, "failed to sweep expired reset codes", "error", err)
	} else if n > 0 {
		slog.InfoContext(ctx, "swept expired reset codes", "count", n)
	}

	account, err := s.repoDB.GetAccountAuthInfoByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "reset code requested for unknown account", "email", email)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate reset code", "account_id", account.ID, "error", err)
		return goerror.NewServer(err)
	}

	codeHash, err := s.argon2id.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash reset code", "account_id", account.ID, "error", err)
		return goerror.NewServer(err)
	}

	// Upsert keyed by email: one live code per account, and a new request
	// restarts the expiry window.
	if err := s.repoDB.UpsertPasswordReset(ctx, entity.PasswordReset{
		Email:     email,
		OTPHash:   codeHash,
		CreatedAt: s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert reset code", "account_id", account.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishPasswordOTPRequested(ctx, PasswordOTPRequestedEvent{
		AccountID: account.ID,
		Email:     account.Email,
		FullName:  account.FullName,
		Code:      code,
		ExpiresIn: s.otpTTL(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish reset code requested", "account_id", account.ID, "error", err)
	}

	return nil
}
