// Package service contains outbound collaborators and background jobs
package service

import (
	"fmt"

	v "github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer is the outbound email collaborator. Handlers depend on this
// interface so tests can swap in a recording fake
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through the configured SMTP relay
type SMTPMailer struct{}

func (SMTPMailer) Send(to, subject, body string) error {
	from := v.GetString("mail.sender")
	if to == from {
		return fmt.Errorf("invalid recipient address")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(v.GetString("mail.host"), v.GetInt("mail.port"), from, v.GetString("mail.password"))

	return d.DialAndSend(m)
}

// LogMailer is used when mail.enabled is false. The verification link
// still has to go somewhere during local development
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	zap.L().Info("Mail sending disabled, dropping message",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

// NewMailer picks the configured Mailer implementation
func NewMailer() Mailer {
	if v.GetBool("mail.enabled") {
		return SMTPMailer{}
	}
	return LogMailer{}
}

// SendVerificationMail mails the plaintext verification token as a link
// the frontend wizard picks up on its verify-email page
func SendVerificationMail(m Mailer, to, plainToken string) error {
	var s string
	if v.GetBool("host.ssl_enabled") {
		s = "s"
	}

	link := fmt.Sprintf("http%v://%v/verify-email/%v", s, v.GetString("host.domain"), plainToken)

	body := fmt.Sprintf(
		"You are receiving this email because you need to confirm your email address. Click <a href='%v'>here</a> to verify.<br><br>This link will expire in %v minutes.<br><br>If you did not create this account, please ignore this email.",
		link, v.GetInt("security.verification_ttl_minutes"))

	return m.Send(to, "Email Verification", body)
}
