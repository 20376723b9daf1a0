package server

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/dsolberg/folio/internal/config"
	"github.com/dsolberg/folio/internal/site"
)

// smtpMailer relays contact submissions to the configured inbox. Validation
// has already rejected line breaks in the name and email fields, so the
// headers below cannot be injected into.
type smtpMailer struct {
	cfg *config.Config
	log *zap.Logger
}

func (m *smtpMailer) Send(sub site.ContactSubmission) error {
	c := m.cfg.SMTP
	if c.User == "" || c.Pass == "" {
		return fmt.Errorf("smtp credentials not configured")
	}

	to := c.To
	if to == "" {
		to = site.Owner.Email
	}

	subject := fmt.Sprintf("Portfolio contact: %s", sub.Name)
	body := fmt.Sprintf("New contact form submission:\n\nName: %s\nEmail: %s\n\n%s\n", sub.Name, sub.Email, sub.Message)

	msg := []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + c.User + "\r\n" +
		"Reply-To: " + sub.Email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", c.User, c.Pass, c.Host)
	if err := smtp.SendMail(c.Host+":"+c.Port, auth, c.User, []string{to}, msg); err != nil {
		return fmt.Errorf("send contact mail: %w", err)
	}

	m.log.Info("contact mail relayed", zap.String("from", sub.Email))
	return nil
}
