//go:build e2e

package accessissues_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	apphttp "github.com/shanco/accessissues/internal/accessissues/http"

	"github.com/shanco/accessissues/internal/accessissues/mail"
	"github.com/shanco/accessissues/internal/accessissues/service"
	"github.com/shanco/accessissues/internal/accessissues/session"
	"github.com/shanco/accessissues/internal/accessissues/store/drivers/postgres"
	"github.com/shanco/accessissues/pkg/authsdk"
	"github.com/shanco/accessissues/pkg/cryptox"
	"github.com/shanco/accessissues/pkg/jwtx"
	"github.com/shanco/accessissues/pkg/mailer"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
)

/*
 * End-to-end tests run the full HTTP stack against a real PostgreSQL
 * started with testcontainers. Run with: go test -tags e2e ./test/e2e/...
 */

const (
	postgresImage = "postgres:17-alpine"
	postgresUser  = "accessissues"
	postgresPass  = "accessissues"
	postgresDB    = "accessissues"

	testOTP = "424242"
)

// setupPostgres starts a fresh database and returns a migrated store.
func setupPostgres(t *testing.T) *postgres.Store {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     postgresUser,
				"POSTGRES_PASSWORD": postgresPass,
				"POSTGRES_DB":       postgresDB,
			},
			// The entrypoint restarts the server once after init.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	url := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		postgresUser, postgresPass, host, port.Port(), postgresDB)

	st, err := postgres.NewStore(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

type stack struct {
	URL   string
	Store *postgres.Store
	Mail  *mailer.Recorder
}

// setupStack serves the router over a PostgreSQL store. Passcodes are fixed
// and email is recorded in memory.
func setupStack(t *testing.T) *stack {
	t.Helper()

	st := setupPostgres(t)
	rec := &mailer.Recorder{}

	templates, err := mail.New()
	require.NoError(t, err)
	tokens, err := jwtx.NewLoginTokens("e2e-token-secret")
	require.NoError(t, err)
	sessions, err := session.NewManager("e2e-session-secret", false)
	require.NoError(t, err)

	const from = "noreply@accessissues.test"
	router := apphttp.NewRouter("e2e", st, sessions, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	router.AuthService = &service.AuthService{
		Store:     st,
		Tokens:    tokens,
		Hasher:    cryptox.NewBcrypt(bcrypt.MinCost),
		OTP:       cryptox.StaticOTP(testOTP),
		Mailer:    rec,
		Templates: templates,
		From:      from,
	}
	router.OrganizationService = &service.OrganizationService{
		Store: st,
		Invites: &service.InviteService{
			Mailer:    rec,
			Templates: templates,
			From:      from,
			SiteURL:   "https://accessissues.test/",
		},
	}
	require.NoError(t, router.ApplyRoutes())

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &stack{URL: srv.URL, Store: st, Mail: rec}
}

func newClient(t *testing.T, baseURL string) *authsdk.Client {
	t.Helper()
	c, err := authsdk.NewClient(baseURL)
	require.NoError(t, err)
	return c
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
