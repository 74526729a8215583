// Package mailer sends account emails over SMTP. Sending is best-effort:
// callers log failures and never fail the request over them.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, email, password string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, email, password),
		from:   email,
	}
}

// SendWelcomeEmail greets a newsletter opt-in after sign-up.
func (m *SMTPMailer) SendWelcomeEmail(toEmail, username string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Welcome to the marketplace")
	msg.SetBody("text/plain", fmt.Sprintf("Hi %s, thanks for signing up! You are subscribed to our newsletter.", username))

	return m.dialer.DialAndSend(msg)
}

// NoopMailer is used when SMTP credentials are not configured.
type NoopMailer struct{}

func (NoopMailer) SendWelcomeEmail(toEmail, username string) error { return nil }
