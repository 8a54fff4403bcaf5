package app

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shanco/accessissues/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := Config{
		Env:                  "test",
		Port:                 0,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
		DatabaseDriver:       DriverSQLite,
		DatabaseFile:         filepath.Join(t.TempDir(), "accessissues.db"),
		TokenSecret:          "token-secret",
		SessionSecret:        "session-secret",
		LoginTokenMaxAge:     20 * time.Minute,
		FromEmail:            "noreply@accessissues.test",
		SiteURL:              "https://accessissues.test/",
	}
	cfg.Mail.Provider = "log"
	return cfg
}

func TestNewServesHealthEndpoints(t *testing.T) {
	application, err := NewWithLogger(testConfig(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	defer srv.Close()

	c, err := authsdk.NewClient(srv.URL)
	require.NoError(t, err)

	ready, err := c.Ready(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, BuildVersion, ready.Version)

	orgs, err := c.ListOrgs(context.Background())
	require.NoError(t, err)
	require.Empty(t, orgs)

	// The log mailer accepts the send; the unknown address still fails.
	_, err = c.SendCode(context.Background(), "nobody@example.com")
	require.True(t, authsdk.IsCode(err, authsdk.CodeOTP))

	require.NoError(t, application.Shutdown())
}

func TestShutdownWithoutRun(t *testing.T) {
	application, err := NewWithLogger(testConfig(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- application.Shutdown() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Shutdown blocked before Run")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.TokenSecret = ""

	_, err := NewWithLogger(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.ErrorIs(t, err, ErrConfig)
}

func TestNewRejectsUnknownMailProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.Mail.Provider = "pigeon"

	_, err := NewWithLogger(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
}
