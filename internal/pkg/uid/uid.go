// Package uid provides the identifier generators used across the app:
// UUIDs for correlation, random secrets for bearer tokens, and snowflakes
// for database primary keys.
package uid

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates int64 identifiers.
type NumberID interface {
	Generate() int64
}
