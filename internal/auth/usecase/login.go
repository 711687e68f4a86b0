package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ramadhaner/authapi/internal/pkg/goerror"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	AccountID int64
	Token     string
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := strings.TrimSpace(strings.ToLower(in.Email))

	// An unknown email and a wrong password produce the same failure so the
	// response does not reveal which accounts exist. The decoy verify keeps
	// the unknown-email path as slow as a real password check.
	account, err := s.repoDB.GetAccountAuthInfoByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		s.bcrypt.Verify(s.bcryptDecoy, in.Password)
		slog.WarnContext(ctx, "login for unknown account", "email", email)
		return nil, goerror.NewBusiness("the provided credentials are incorrect", goerror.CodeInvalidInput)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(account.Password, in.Password) {
		slog.WarnContext(ctx, "login with wrong password", "account_id", account.ID)
		return nil, goerror.NewBusiness("the provided credentials are incorrect", goerror.CodeInvalidInput)
	}

	token, err := s.issueBearerToken(ctx, account.ID)
	if err != nil {
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{AccountID: account.ID, Token: token}, nil
}
