package entity

import "time"

type Account struct {
	ID        int64
	Email     string
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type NewAccount struct {
	ID       int64
	Email    string
	FullName string
	Password string // hashed
}

// AccountAuthInfo carries the password hash alongside the account identity,
// for the single place that needs to verify it.
type AccountAuthInfo struct {
	ID        int64
	Email     string
	FullName  string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BearerToken stores only the digest of an issued secret. The plaintext
// secret exists once, in the response that issued it.
type BearerToken struct {
	ID        int64
	AccountID int64
	Digest    string
	CreatedAt time.Time
}

// PasswordReset is the single live reset code for an email, digest only.
type PasswordReset struct {
	Email     string
	OTPHash   string
	CreatedAt time.Time
}

// TokenAccount is the join of a bearer token and its owning account,
// produced when a presented secret resolves.
type TokenAccount struct {
	TokenID     int64
	TokenDigest string
	AccountID   int64
	Email       string
	FullName    string
}
