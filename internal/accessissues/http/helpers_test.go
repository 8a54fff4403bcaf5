package http_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	apphttp "github.com/shanco/accessissues/internal/accessissues/http"

	"github.com/shanco/accessissues/internal/accessissues/domain"
	"github.com/shanco/accessissues/internal/accessissues/mail"
	"github.com/shanco/accessissues/internal/accessissues/service"
	"github.com/shanco/accessissues/internal/accessissues/session"
	"github.com/shanco/accessissues/internal/accessissues/store/drivers/sqlite"
	"github.com/shanco/accessissues/pkg/authsdk"
	"github.com/shanco/accessissues/pkg/cryptox"
	"github.com/shanco/accessissues/pkg/idx"
	"github.com/shanco/accessissues/pkg/jwtx"
	"github.com/shanco/accessissues/pkg/mailer"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testOTP = "123456"

type testServer struct {
	URL   string
	Store *sqlite.Store
	Mail  *mailer.Recorder
}

// newTestServer serves the full router over an in-memory database. Every
// server has its own rate limiters.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithMail(t, &mailer.Recorder{})
}

func newTestServerWithMail(t *testing.T, rec *mailer.Recorder) *testServer {
	t.Helper()

	db, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.ApplyMigrations())

	templates, err := mail.New()
	require.NoError(t, err)
	tokens, err := jwtx.NewLoginTokens("test-token-secret")
	require.NoError(t, err)
	sessions, err := session.NewManager("test-session-secret", false)
	require.NoError(t, err)

	const from = "noreply@accessissues.test"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := apphttp.NewRouter("test", db, sessions, logger)
	router.AuthService = &service.AuthService{
		Store:     db,
		Tokens:    tokens,
		Hasher:    cryptox.NewBcrypt(bcrypt.MinCost),
		OTP:       cryptox.StaticOTP(testOTP),
		Mailer:    rec,
		Templates: templates,
		From:      from,
	}
	router.OrganizationService = &service.OrganizationService{
		Store: db,
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

	return &testServer{URL: srv.URL, Store: db, Mail: rec}
}

func (s *testServer) client(t *testing.T) *authsdk.Client {
	t.Helper()
	c, err := authsdk.NewClient(s.URL)
	require.NoError(t, err)
	return c
}

func (s *testServer) createUser(t *testing.T, name, email string) domain.User {
	t.Helper()
	u := domain.User{ID: idx.New().String(), Name: name, Email: email}
	require.NoError(t, s.Store.Users().CreateUser(context.Background(), u))
	return u
}

func (s *testServer) createOrg(t *testing.T, name, slug string) domain.Organization {
	t.Helper()
	o := domain.Organization{ID: idx.New().String(), Name: name, Slug: slug}
	require.NoError(t, s.Store.Organizations().CreateOrganization(context.Background(), o))
	return o
}

func (s *testServer) assign(t *testing.T, userID, orgID string, role domain.Role) {
	t.Helper()
	require.NoError(t, s.Store.Users().AddToOrganization(context.Background(), userID, orgID, role))
}

// login runs the two-step email login for an existing user.
func login(t *testing.T, c *authsdk.Client, email string) {
	t.Helper()
	ctx := context.Background()

	sent, err := c.SendCode(ctx, email)
	require.NoError(t, err)
	_, err = c.Verify(ctx, sent.Token, testOTP)
	require.NoError(t, err)
}

// requireAPIError asserts err is a failed envelope with status, code and
// message.
func requireAPIError(t *testing.T, err error, status int, code, message string) {
	t.Helper()
	require.Error(t, err)

	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
	if message != "" {
		require.Equal(t, message, apiErr.Message)
	}
}
