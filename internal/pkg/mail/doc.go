// Package mail defines the email sending contract and an SMTP backend.
//
// Callers depend on the Mail interface and Message payload only; the
// concrete transport lives behind it so it can be swapped without touching
// the use cases that send mail.
package mail
