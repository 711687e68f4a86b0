package inbound

import (
	"context"

	"github.com/ramadhaner/authapi/internal/auth/usecase"
	"github.com/ramadhaner/authapi/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	Logout(ctx context.Context, in usecase.LogoutInput) error

	PasswordForgot(ctx context.Context, in usecase.PasswordForgotInput) error
	PasswordReset(ctx context.Context, in usecase.PasswordResetInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/auth/register", end.Register)
	r.POST("/api/v1/auth/login", end.Login)
	r.POST("/api/v1/auth/logout", end.Logout) // need authenticated

	r.POST("/api/v1/auth/password/forgot", end.PasswordForgot)
	r.POST("/api/v1/auth/password/reset", end.PasswordReset)
}
