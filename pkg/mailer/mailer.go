// Package mailer delivers transactional email through a pluggable provider.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var (
	ErrNoRecipients  = errors.New("mailer: no recipients")
	ErrNoSender      = errors.New("mailer: no from address")
	ErrConfig        = errors.New("mailer: invalid configuration")
	ErrUnknownDriver = errors.New("mailer: unknown provider")
)

// Message is one email. Text and HTML are alternative bodies of the same
// content; either may be empty but not both.
type Message struct {
	From    string
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Validate checks the fields every provider needs.
func (m Message) Validate() error {
	if strings.TrimSpace(m.From) == "" {
		return ErrNoSender
	}
	if len(m.To) == 0 {
		return ErrNoRecipients
	}
	return nil
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Config selects and configures a provider.
type Config struct {
	Provider string // sendgrid | mailgun | smtp | log

	SendGridAPIKey string
	SendGridHost   string

	MailgunDomain  string
	MailgunAPIKey  string
	MailgunAPIBase string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
}

// New returns the Sender for cfg.Provider. logger is used by the log
// provider.
func New(cfg Config, logger *slog.Logger) (Sender, error) {
	switch strings.ToLower(cfg.Provider) {
	case "sendgrid":
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("%w: sendgrid api key is required", ErrConfig)
		}
		return NewSendGrid(cfg.SendGridAPIKey, cfg.SendGridHost), nil
	case "mailgun":
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
			return nil, fmt.Errorf("%w: mailgun domain and api key are required", ErrConfig)
		}
		return NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunAPIBase), nil
	case "smtp":
		if cfg.SMTPHost == "" || cfg.SMTPPort == "" {
			return nil, fmt.Errorf("%w: smtp host and port are required", ErrConfig)
		}
		return &SMTP{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		}, nil
	case "log", "":
		return &Log{Logger: logger}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Provider)
	}
}
