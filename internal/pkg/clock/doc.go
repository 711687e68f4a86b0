// Package clock abstracts the system time behind the Clocker interface.
//
// Use cases take a Clocker instead of calling time.Now() directly, which
// keeps expiry logic deterministic under test.
package clock
