package usecase

import (
	"context"
	"log/slog"
)

type ConsumeAccountRegisteredInput struct {
	AccountID int64
	Email     string
	FullName  string
}

// ConsumeAccountRegistered sends the welcome email. Re-delivery is harmless,
// so the handler carries no dedup state.
func (s *Usecase) ConsumeAccountRegistered(ctx context.Context, in ConsumeAccountRegisteredInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeAccountRegistered")
	defer span.End()

	body, err := s.render(s.tplWelcome, map[string]any{"FullName": in.FullName})
	if err != nil {
		slog.ErrorContext(ctx, "failed to render welcome email", "account_id", in.AccountID, "error", err)
		return nil
	}

	if err := s.sendEmail(ctx, in.Email, "Welcome!", body); err != nil {
		slog.ErrorContext(ctx, "failed to send welcome email", "account_id", in.AccountID, "error", err)
		return err
	}

	return nil
}
