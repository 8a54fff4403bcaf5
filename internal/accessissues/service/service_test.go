package service

import (
	"context"
	"testing"
	"time"

	"github.com/shanco/accessissues/internal/accessissues/domain"
	"github.com/shanco/accessissues/internal/accessissues/mail"
	"github.com/shanco/accessissues/internal/accessissues/store"
	"github.com/shanco/accessissues/internal/accessissues/store/drivers/sqlite"
	"github.com/shanco/accessissues/pkg/cryptox"
	"github.com/shanco/accessissues/pkg/idx"
	"github.com/shanco/accessissues/pkg/jwtx"
	"github.com/shanco/accessissues/pkg/mailer"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testOTP = "123456"

// countingStore records how often the users repository is reached.
type countingStore struct {
	store.Store
	userCalls int
}

func (c *countingStore) Users() store.Users {
	c.userCalls++
	return c.Store.Users()
}

type fixture struct {
	store  *countingStore
	mail   *mailer.Recorder
	now    time.Time
	auth   *AuthService
	orgs   *OrganizationService
	invite *InviteService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.ApplyMigrations())

	templates, err := mail.New()
	require.NoError(t, err)

	tokens, err := jwtx.NewLoginTokens("test-token-secret")
	require.NoError(t, err)

	f := &fixture{
		store: &countingStore{Store: db},
		mail:  &mailer.Recorder{},
		now:   time.UnixMilli(1_700_000_000_000),
	}
	tokens.Now = func() time.Time { return f.now }

	f.auth = &AuthService{
		Store:     f.store,
		Tokens:    tokens,
		Hasher:    cryptox.NewBcrypt(bcrypt.MinCost),
		OTP:       cryptox.StaticOTP(testOTP),
		Mailer:    f.mail,
		Templates: templates,
		From:      "noreply@accessissues.test",
	}
	f.invite = &InviteService{
		Mailer:    f.mail,
		Templates: templates,
		From:      "noreply@accessissues.test",
		SiteURL:   "https://accessissues.test/",
	}
	f.orgs = &OrganizationService{
		Store:   f.store,
		Invites: f.invite,
	}
	return f
}

func (f *fixture) createUser(t *testing.T, name, email string) domain.User {
	t.Helper()
	u := domain.User{ID: idx.New().String(), Name: name, Email: email}
	require.NoError(t, f.store.Store.Users().CreateUser(context.Background(), u))
	return u
}

func (f *fixture) createOrg(t *testing.T, name, slug string) domain.Organization {
	t.Helper()
	o := domain.Organization{ID: idx.New().String(), Name: name, Slug: slug}
	require.NoError(t, f.store.Store.Organizations().CreateOrganization(context.Background(), o))
	return o
}

func (f *fixture) assign(t *testing.T, userID, orgID string, role domain.Role) {
	t.Helper()
	require.NoError(t, f.store.Store.Users().AddToOrganization(context.Background(), userID, orgID, role))
}

func session(u domain.User) domain.SessionData {
	return domain.SessionData{UserID: u.ID, Email: u.Email, Name: u.Name}
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "a@x.com", NormalizeEmail("  A@X.com \n"))
}
