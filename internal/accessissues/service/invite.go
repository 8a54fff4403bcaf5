package service

import (
	"context"
	"log/slog"

	"github.com/shanco/accessissues/internal/accessissues/mail"
	"github.com/shanco/accessissues/pkg/mailer"
	"github.com/shanco/accessissues/pkg/result"
	"github.com/shanco/accessissues/pkg/slogx"
	"github.com/shanco/accessissues/pkg/validatex"
)

type InviteInput struct {
	Email            string `json:"email" validate:"required,email"`
	OrganizationName string `json:"organizationName" validate:"required"`
}

// InviteService emails new organization members where to sign in.
type InviteService struct {
	Mailer    mailer.Sender
	Templates *mail.Templates
	Validator *validatex.Validator

	From    string
	SiteURL string
}

func (s *InviteService) InviteUser(ctx context.Context, input InviteInput) result.Result[bool] {
	log := slogx.FromContext(ctx)

	if appErr := validate(s.Validator, input); appErr != nil {
		return result.Err[bool](appErr)
	}

	rendered, err := s.Templates.Invite(input.OrganizationName, s.SiteURL)
	if err != nil {
		return result.Err[bool](result.Unexpected(err, result.Context{Data: input}))
	}

	err = s.Mailer.Send(ctx, mailer.Message{
		From:    s.From,
		To:      []string{input.Email},
		Subject: rendered.Subject,
		Text:    rendered.Text,
		HTML:    rendered.HTML,
	})
	if err != nil {
		log.Error("failed to send invite", slog.String("email", input.Email), slog.Any("error", err))
		return result.Err[bool](result.New(result.CodeEmail, MsgSendEmailFailed, result.Context{Err: err, Data: input}))
	}

	log.Info("invite sent", slog.String("email", input.Email))
	return result.Ok(true)
}
