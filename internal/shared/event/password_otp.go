package event

const PasswordOTPRequestedDestination string = "password_otp_requested"
const PasswordOTPRequestedConsumerNotification string = "password_otp_requested_notification"

// PasswordOTPRequestedMessage carries the reset code to the mailer. The code
// travels only on the broker; it is never persisted or logged in plaintext.
type PasswordOTPRequestedMessage struct {
	AccountID int64  `json:"account_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Code      string `json:"code"`
	ExpiresIn string `json:"expires_in"`
}
