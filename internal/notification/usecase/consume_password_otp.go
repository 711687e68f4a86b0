package usecase

import (
	"context"
	"log/slog"
)

type ConsumePasswordOTPRequestedInput struct {
	AccountID int64
	Email     string
	FullName  string
	Code      string
	ExpiresIn string
}

// ConsumePasswordOTPRequested emails the reset code. The code is already
// superseded server-side if the account requests again, so redelivering the
// latest message is safe.
func (s *Usecase) ConsumePasswordOTPRequested(ctx context.Context, in ConsumePasswordOTPRequestedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumePasswordOTPRequested")
	defer span.End()

	body, err := s.render(s.tplOTP, map[string]any{
		"FullName":  in.FullName,
		"Code":      in.Code,
		"ExpiresIn": in.ExpiresIn,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to render reset code email", "account_id", in.AccountID, "error", err)
		return nil
	}

	if err := s.sendEmail(ctx, in.Email, "Your password reset code", body); err != nil {
		slog.ErrorContext(ctx, "failed to send reset code email", "account_id", in.AccountID, "error", err)
		return err
	}

	return nil
}
