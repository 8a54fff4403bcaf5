package mailer

import (
	"context"
	"log/slog"
)

// Log writes messages to a logger instead of delivering them. For local
// development only: the body, and any code in it, ends up in the logs.
type Log struct {
	Logger *slog.Logger
}

func (l *Log) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "email",
		slog.Any("to", msg.To),
		slog.String("from", msg.From),
		slog.String("subject", msg.Subject),
		slog.String("text", msg.Text),
	)
	return nil
}
