// Package mailer delivers contact-form messages over SMTP.
package mailer

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

const defaultSubject = "New Contact Form Submission"

// Config describes the SMTP account used for outbound mail. Recipient
// defaults to the account itself: the contact form delivers to the resume
// owner.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	To       string
}

type Mailer struct {
	cfg    Config
	logger *zap.Logger
	// send is swappable in tests.
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

func New(cfg Config, logger *zap.Logger) (*Mailer, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if strings.TrimSpace(cfg.Username) == "" {
		return nil, errors.New("smtp username is required")
	}
	if cfg.To == "" {
		cfg.To = cfg.Username
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Mailer{cfg: cfg, logger: logger, send: smtp.SendMail}, nil
}

// Send forwards the visitor's message to the configured recipient. The
// visitor address goes into the body, not the envelope, so replies are a
// conscious step.
func (m *Mailer) Send(fromEmail, message string) error {
	fromEmail = strings.TrimSpace(fromEmail)
	message = strings.TrimSpace(message)
	if fromEmail == "" || message == "" {
		return errors.New("email and message are required")
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	body := buildMessage(m.cfg.Username, m.cfg.To, defaultSubject, fromEmail, message)

	if err := m.send(addr, auth, m.cfg.Username, []string{m.cfg.To}, body); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	m.logger.Info("contact message delivered", zap.String("from", fromEmail))
	return nil
}

func buildMessage(from, to, subject, visitorEmail, message string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "New message from: %s\r\n\r\n", visitorEmail)
	b.WriteString(message)
	b.WriteString("\r\n")
	return []byte(b.String())
}
