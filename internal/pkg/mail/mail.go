package mail

import (
	"context"
	"io"
)

// Message is a provider-agnostic email payload. The notification module
// builds these for welcome and password-reset emails.
type Message struct {
	// From overrides the configured default sender when set.
	From string
	// To lists the primary recipients. At least one is required.
	To []string
	// Cc lists carbon copy recipients.
	Cc []string
	// Bcc lists blind carbon copy recipients.
	Bcc []string
	// Subject is the email subject line.
	Subject string
	// TextBody is the plain-text body.
	TextBody string
	// HTMLBody is the optional HTML alternative body.
	HTMLBody string
}

// Mail sends email messages through some delivery backend.
type Mail interface {
	io.Closer
	// Send dispatches the message. It blocks until the backend accepts or
	// rejects it, honoring ctx cancellation.
	Send(ctx context.Context, msg Message) error
}
