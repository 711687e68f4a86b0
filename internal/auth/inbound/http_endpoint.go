package inbound

import (
	"github.com/ramadhaner/authapi/internal/auth/usecase"
	"github.com/ramadhaner/authapi/internal/pkg/goerror"
	"github.com/ramadhaner/authapi/internal/pkg/router"
	"github.com/ramadhaner/authapi/internal/pkg/session"
)

const tokenType = "Bearer"

// HTTPEndpoint exposes the credential lifecycle over HTTP.
type HTTPEndpoint struct {
	uc uc
}

// Register creates an account and returns it with a fresh bearer token.
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		FullName:             req.FullName,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{
		Account: AccountResponse{
			ID:        resp.Account.ID,
			Email:     resp.Account.Email,
			FullName:  resp.Account.FullName,
			CreatedAt: resp.Account.CreatedAt,
			UpdatedAt: resp.Account.UpdatedAt,
		},
		Token:     resp.Token,
		TokenType: tokenType,
	}, nil
}

// Login verifies credentials and issues a new bearer token.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{Token: resp.Token, TokenType: tokenType}, nil
}

// Logout revokes the token that authenticated this request.
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	if err := h.uc.Logout(r.Context(), usecase.LogoutInput{
		AccountID:   sess.AccountID,
		TokenID:     sess.TokenID,
		TokenDigest: sess.TokenDigest,
	}); err != nil {
		return nil, err
	}

	return LogoutResponse{}, nil
}

// PasswordForgot requests a reset code; the response never reveals whether
// the email belongs to an account.
func (h *HTTPEndpoint) PasswordForgot(r *router.Request) (any, error) {
	var req PasswordForgotRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordForgot(r.Context(), usecase.PasswordForgotInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return PasswordForgotResponse{}, nil
}

// PasswordReset consumes a reset code, replaces the password and revokes
// every outstanding token of the account.
func (h *HTTPEndpoint) PasswordReset(r *router.Request) (any, error) {
	var req PasswordResetRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordReset(r.Context(), usecase.PasswordResetInput{
		Email:                req.Email,
		Code:                 req.Code,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	}); err != nil {
		return nil, err
	}

	return PasswordResetResponse{}, nil
}
