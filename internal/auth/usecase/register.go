package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ramadhaner/authapi/internal/auth/entity"
	"github.com/ramadhaner/authapi/internal/pkg/goerror"
)

type RegisterInput struct {
	FullName             string `validate:"required,min=3,max=100,alphaspace"`
	Email                string `validate:"required,email,max=255"`
	Password             string `validate:"required,password"`
	PasswordConfirmation string `validate:"required,eqfield=Password"`
}

type RegisterOutput struct {
	Account entity.Account
	Token   string
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	account := entity.NewAccount{
		ID:       s.uid.Generate(),
		Email:    in.Email,
		FullName: in.FullName,
		Password: hashedPassword,
	}

	if err := s.repoDB.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			slog.WarnContext(ctx, "registration with taken email", "email", in.Email)
			return nil, goerror.NewBusiness("email already registered", goerror.CodeInvalidInput)
		}

		slog.ErrorContext(ctx, "failed to repo create account", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	token, err := s.issueBearerToken(ctx, account.ID)
	if err != nil {
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishAccountRegistered(ctx, AccountRegisteredEvent{
		AccountID: account.ID,
		Email:     account.Email,
		FullName:  account.FullName,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish account registered", "account_id", account.ID, "error", err)
	}

	now := s.clock.Now()

	return &RegisterOutput{
		Account: entity.Account{
			ID:        account.ID,
			Email:     account.Email,
			FullName:  account.FullName,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Token: token,
	}, nil
}
