package clock

import "time"

// Clocker is the time source used by code that cares about "now", such as
// reset-code expiry checks. Tests substitute a fixed implementation.
type Clocker interface {
	Now() time.Time
}

// TimeClocker reads the real system time.
type TimeClocker struct{}

// New returns the production clock.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now returns the current system time.
func (*TimeClocker) Now() time.Time {
	return time.Now()
}
