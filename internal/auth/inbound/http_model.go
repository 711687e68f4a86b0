package inbound

import (
	"net/http"
	"time"
)

type RegisterRequest struct {
	FullName             string `json:"full_name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type AccountResponse struct {
	ID        int64     `json:"id,string"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterResponse struct {
	Account   AccountResponse `json:"account"`
	Token     string          `json:"token"`
	TokenType string          `json:"token_type"`
}

func (RegisterResponse) Message() string {
	return "Account registered successfully"
}

func (RegisterResponse) StatusCode() int {
	return http.StatusCreated
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

func (LoginResponse) Message() string {
	return "Login successful"
}

type LogoutResponse struct{}

func (LogoutResponse) Message() string {
	return "Logged out successfully"
}

type PasswordForgotRequest struct {
	Email string `json:"email"`
}

type PasswordForgotResponse struct{}

func (PasswordForgotResponse) Message() string {
	return "If an account with that email exists, we have sent a reset code."
}

type PasswordResetRequest struct {
	Email                string `json:"email"`
	Code                 string `json:"code"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type PasswordResetResponse struct{}

func (PasswordResetResponse) Message() string {
	return "Password has been reset successfully"
}
