package uid

import "github.com/google/uuid"

// UUID produces RFC 4122 UUID strings. The router uses it to mint
// correlation IDs for requests that arrive without one.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a time-ordered UUIDv7 string, falling back to a
// random UUIDv4 if the v7 source fails.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
