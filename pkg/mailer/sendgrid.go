package mailer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendGridDefaultHost = "https://api.sendgrid.com"
	sendGridEndpoint    = "/v3/mail/send"
	sendTimeout         = 30 * time.Second
)

// SendGrid sends through the SendGrid v3 mail API.
type SendGrid struct {
	apiKey string
	host   string
}

// NewSendGrid returns a SendGrid sender. An empty host means the public API.
func NewSendGrid(apiKey, host string) *SendGrid {
	if host == "" {
		host = sendGridDefaultHost
	}
	return &SendGrid{apiKey: apiKey, host: host}
}

func (s *SendGrid) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail("", msg.From))
	m.Subject = msg.Subject

	p := mail.NewPersonalization()
	for _, to := range msg.To {
		p.AddTos(mail.NewEmail("", to))
	}
	m.AddPersonalizations(p)

	if msg.Text != "" {
		m.AddContent(mail.NewContent("text/plain", msg.Text))
	}
	if msg.HTML != "" {
		m.AddContent(mail.NewContent("text/html", msg.HTML))
	}

	request := sendgrid.GetRequest(s.apiKey, sendGridEndpoint, s.host)
	request.Method = http.MethodPost
	client := &sendgrid.Client{Request: request}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	response, err := client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("mailer: sendgrid: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return fmt.Errorf("mailer: sendgrid: status code %d", response.StatusCode)
	}
	return nil
}
