package mailer

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"
)

// Mailgun sends through the Mailgun messages API.
type Mailgun struct {
	mg *mailgun.MailgunImpl
}

// NewMailgun returns a Mailgun sender. An empty apiBase keeps the client
// default (US region).
func NewMailgun(domain, apiKey, apiBase string) *Mailgun {
	mg := mailgun.NewMailgun(domain, apiKey)
	if apiBase != "" {
		mg.SetAPIBase(apiBase)
	}
	return &Mailgun{mg: mg}
}

func (s *Mailgun) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	message := s.mg.NewMessage(msg.From, msg.Subject, msg.Text)
	for _, to := range msg.To {
		if err := message.AddRecipient(to); err != nil {
			return fmt.Errorf("mailer: mailgun: %w", err)
		}
	}
	if msg.HTML != "" {
		message.SetHtml(msg.HTML)
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if _, _, err := s.mg.Send(ctx, message); err != nil {
		return fmt.Errorf("mailer: mailgun: %w", err)
	}
	return nil
}
