// Package session carries the authenticated caller identity resolved from a
// bearer token through the request context.
package session

import "context"

type sessionContextKey struct{}

// Session identifies an authenticated account and the token it presented.
type Session struct {
	// AccountID is the authenticated account identifier.
	AccountID int64
	// TokenID is the identifier of the presented bearer token.
	TokenID int64
	// TokenDigest is the stored digest of the presented token secret.
	TokenDigest string
	// Email is the authenticated account email.
	Email string
	// FullName is the authenticated account display name.
	FullName string
}

// FromContext returns the session stored in the context, if any.
func FromContext(ctx context.Context) *Session {
	s, ok := ctx.Value(sessionContextKey{}).(Session)
	if !ok {
		return nil
	}

	return &s
}

// NewContext stores a session in the context.
func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}
