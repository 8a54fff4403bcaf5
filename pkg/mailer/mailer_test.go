package mailer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shanco/accessissues/pkg/mailer"
	"github.com/stretchr/testify/require"
)

func testMessage() mailer.Message {
	return mailer.Message{
		From:    "noreply@accessissues.test",
		To:      []string{"a@x.com"},
		Subject: "Login to Access Issues",
		Text:    "Your code is 012345",
		HTML:    "<p>Your code is <b>012345</b></p>",
	}
}

func TestSendGrid(t *testing.T) {
	t.Run("posts a v3 mail", func(t *testing.T) {
		var got struct {
			Personalizations []struct {
				To []struct {
					Email string `json:"email"`
				} `json:"to"`
			} `json:"personalizations"`
			From struct {
				Email string `json:"email"`
			} `json:"from"`
			Subject string `json:"subject"`
			Content []struct {
				Type  string `json:"type"`
				Value string `json:"value"`
			} `json:"content"`
		}

		var method, path, auth string
		var body []byte
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method, path, auth = r.Method, r.URL.Path, r.Header.Get("Authorization")
			body, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusAccepted)
		}))
		defer srv.Close()

		sender := mailer.NewSendGrid("sg-key", srv.URL)
		require.NoError(t, sender.Send(context.Background(), testMessage()))

		require.Equal(t, http.MethodPost, method)
		require.Equal(t, "/v3/mail/send", path)
		require.Equal(t, "Bearer sg-key", auth)
		require.NoError(t, json.Unmarshal(body, &got))

		require.Equal(t, "Login to Access Issues", got.Subject)
		require.Equal(t, "noreply@accessissues.test", got.From.Email)
		require.Len(t, got.Personalizations, 1)
		require.Equal(t, "a@x.com", got.Personalizations[0].To[0].Email)
		require.Len(t, got.Content, 2)
		require.Equal(t, "text/plain", got.Content[0].Type)
		require.Equal(t, "text/html", got.Content[1].Type)
	})

	t.Run("non 2xx is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		err := mailer.NewSendGrid("bad-key", srv.URL).Send(context.Background(), testMessage())
		require.Error(t, err)
		require.Contains(t, err.Error(), "401")
	})

	t.Run("no recipients", func(t *testing.T) {
		msg := testMessage()
		msg.To = nil
		err := mailer.NewSendGrid("sg-key", "http://127.0.0.1:0").Send(context.Background(), msg)
		require.ErrorIs(t, err, mailer.ErrNoRecipients)
	})
}

func TestMailgun(t *testing.T) {
	var path, to, subject string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		to = r.FormValue("to")
		subject = r.FormValue("subject")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Queued. Thank you.","id":"<1@mg.accessissues.test>"}`))
	}))
	defer srv.Close()

	sender := mailer.NewMailgun("mg.accessissues.test", "mg-key", srv.URL+"/v3")
	require.NoError(t, sender.Send(context.Background(), testMessage()))
	require.True(t, strings.HasSuffix(path, "/mg.accessissues.test/messages"), path)
	require.Equal(t, "a@x.com", to)
	require.Equal(t, "Login to Access Issues", subject)
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	sender := &mailer.Log{Logger: logger}
	require.NoError(t, sender.Send(context.Background(), testMessage()))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "email", line["msg"])
	require.Equal(t, "Login to Access Issues", line["subject"])
	require.Contains(t, line["text"], "012345")
}

func TestRecorder(t *testing.T) {
	r := &mailer.Recorder{}

	_, ok := r.Last()
	require.False(t, ok)

	require.NoError(t, r.Send(context.Background(), testMessage()))
	last, ok := r.Last()
	require.True(t, ok)
	require.Equal(t, testMessage(), last)
	require.Len(t, r.Messages(), 1)

	boom := errors.New("smtp down")
	r.Err = boom
	require.ErrorIs(t, r.Send(context.Background(), testMessage()), boom)
	require.Len(t, r.Messages(), 1)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     mailer.Config
		want    any
		wantErr error
	}{
		{"default is log", mailer.Config{}, &mailer.Log{}, nil},
		{"sendgrid", mailer.Config{Provider: "sendgrid", SendGridAPIKey: "k"}, &mailer.SendGrid{}, nil},
		{"sendgrid without key", mailer.Config{Provider: "sendgrid"}, nil, mailer.ErrConfig},
		{"mailgun", mailer.Config{Provider: "mailgun", MailgunDomain: "d", MailgunAPIKey: "k"}, &mailer.Mailgun{}, nil},
		{"smtp", mailer.Config{Provider: "SMTP", SMTPHost: "localhost", SMTPPort: "25"}, &mailer.SMTP{}, nil},
		{"smtp without host", mailer.Config{Provider: "smtp"}, nil, mailer.ErrConfig},
		{"unknown", mailer.Config{Provider: "pigeon"}, nil, mailer.ErrUnknownDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender, err := mailer.New(tt.cfg, slog.Default())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.IsType(t, tt.want, sender)
		})
	}
}
