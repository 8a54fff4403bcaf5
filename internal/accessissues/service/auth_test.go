package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shanco/accessissues/internal/accessissues/domain"
	"github.com/shanco/accessissues/pkg/cryptox"
	"github.com/shanco/accessissues/pkg/jwtx"
	"github.com/shanco/accessissues/pkg/result"
	"github.com/stretchr/testify/require"
)

func TestGenerateLoginChallenge(t *testing.T) {
	f := newFixture(t)

	res := f.auth.GenerateLoginChallenge("a@x.com")
	require.True(t, res.IsOk())
	c := res.Data

	require.Equal(t, testOTP, c.OTP)
	require.Equal(t, f.now.UnixMilli(), c.IssuedAt.UnixMilli())
	require.NotEqual(t, c.OTP, c.OTPHash)
	require.NoError(t, f.auth.Hasher.Compare(c.OTP, c.OTPHash))

	claims, err := f.auth.Tokens.Validate(c.Token, f.auth.tokenOptions())
	require.NoError(t, err)
	require.Equal(t, "a@x.com", claims.Payload)
	require.NoError(t, f.auth.Hasher.Compare(claims.Token, c.TokenHash))

	t.Run("each challenge is fresh", func(t *testing.T) {
		again := f.auth.GenerateLoginChallenge("a@x.com")
		require.True(t, again.IsOk())
		require.NotEqual(t, c.Token, again.Data.Token)
		require.NotEqual(t, c.TokenHash, again.Data.TokenHash)
	})

	t.Run("passcode failure", func(t *testing.T) {
		svc := *f.auth
		svc.OTP = failingOTP{}
		res := svc.GenerateLoginChallenge("a@x.com")
		require.False(t, res.IsOk())
		require.Equal(t, result.CodeOTP, res.Error.Code)
	})

	t.Run("hash failure", func(t *testing.T) {
		svc := *f.auth
		svc.Hasher = failingHasher{}
		res := svc.GenerateLoginChallenge("a@x.com")
		require.False(t, res.IsOk())
		require.Equal(t, result.CodeHash, res.Error.Code)
	})
}

func TestSendOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("stores challenge and emails the code", func(t *testing.T) {
		f := newFixture(t)
		user := f.createUser(t, "Alice", "a@x.com")

		res := f.auth.SendOTP(ctx, "  A@x.com ")
		require.True(t, res.IsOk(), "%v", res.Error)
		require.NotEmpty(t, res.Data)

		stored, err := f.store.Store.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.True(t, stored.HasChallenge())
		require.Equal(t, f.now.UnixMilli(), stored.ChallengeIssuedAt.UnixMilli())
		require.NoError(t, f.auth.Hasher.Compare(testOTP, *stored.OTPHash))

		msg, ok := f.mail.Last()
		require.True(t, ok)
		require.Equal(t, []string{"a@x.com"}, msg.To)
		require.Equal(t, "noreply@accessissues.test", msg.From)
		require.Contains(t, msg.Text, testOTP)
		require.Contains(t, msg.Text, "20 minutes")
		require.Contains(t, msg.HTML, testOTP)
	})

	t.Run("invalid email", func(t *testing.T) {
		f := newFixture(t)
		res := f.auth.SendOTP(ctx, "not-an-email")
		require.ErrorIs(t, res.Error, result.New(result.CodeOTP, MsgInvalidEmail, result.Context{}))
		require.Empty(t, f.mail.Messages())
		require.Zero(t, f.store.userCalls)
	})

	t.Run("unknown email sends nothing", func(t *testing.T) {
		f := newFixture(t)
		res := f.auth.SendOTP(ctx, "nobody@x.com")
		require.ErrorIs(t, res.Error, result.New(result.CodeOTP, MsgInvalidEmail, result.Context{}))
		require.Empty(t, f.mail.Messages())
	})

	t.Run("mail failure", func(t *testing.T) {
		f := newFixture(t)
		f.createUser(t, "Alice", "a@x.com")
		f.mail.Err = errors.New("smtp down")

		res := f.auth.SendOTP(ctx, "a@x.com")
		require.False(t, res.IsOk())
		require.Equal(t, result.CodeEmail, res.Error.Code)
		require.Equal(t, MsgSendEmailFailed, res.Error.Message)
	})

	t.Run("newer code replaces older one", func(t *testing.T) {
		f := newFixture(t)
		f.createUser(t, "Alice", "a@x.com")

		first := f.auth.SendOTP(ctx, "a@x.com")
		require.True(t, first.IsOk())
		f.now = f.now.Add(time.Second)
		second := f.auth.SendOTP(ctx, "a@x.com")
		require.True(t, second.IsOk())

		stale := f.auth.Authenticate(ctx, first.Data, testOTP)
		require.Equal(t, MsgInvalidTokenSum, stale.Error.Message)

		fresh := f.auth.Authenticate(ctx, second.Data, testOTP)
		require.True(t, fresh.IsOk())
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("success consumes the challenge", func(t *testing.T) {
		f := newFixture(t)
		user := f.createUser(t, "Alice", "a@x.com")

		token := f.auth.SendOTP(ctx, "a@x.com")
		require.True(t, token.IsOk())

		f.now = f.now.Add(5 * time.Minute)
		res := f.auth.Authenticate(ctx, token.Data, testOTP)
		require.True(t, res.IsOk(), "%v", res.Error)
		require.Equal(t, domain.SessionData{UserID: user.ID, Email: "a@x.com", Name: "Alice"}, res.Data)

		stored, err := f.store.Store.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.False(t, stored.HasChallenge())

		replay := f.auth.Authenticate(ctx, token.Data, testOTP)
		require.Equal(t, result.CodeAuthentication, replay.Error.Code)
		require.Equal(t, MsgInvalidTokenSum, replay.Error.Message)
	})

	t.Run("invalid token never reaches the store", func(t *testing.T) {
		f := newFixture(t)

		for _, token := range []string{"", "garbage", "a.b.c"} {
			res := f.auth.Authenticate(ctx, token, testOTP)
			require.Equal(t, result.CodeToken, res.Error.Code)
			require.Equal(t, MsgInvalidToken, res.Error.Message)
		}
		require.Zero(t, f.store.userCalls)
	})

	t.Run("expired after twenty minutes", func(t *testing.T) {
		f := newFixture(t)
		f.createUser(t, "Alice", "a@x.com")

		token := f.auth.SendOTP(ctx, "a@x.com")
		require.True(t, token.IsOk())
		calls := f.store.userCalls

		f.now = f.now.Add(21 * time.Minute)
		res := f.auth.Authenticate(ctx, token.Data, testOTP)
		require.Equal(t, result.CodeToken, res.Error.Code)
		require.Equal(t, MsgExpired, res.Error.Message)
		require.Equal(t, calls, f.store.userCalls)
	})

	t.Run("token of another secret", func(t *testing.T) {
		f := newFixture(t)
		f.createUser(t, "Alice", "a@x.com")

		foreign, err := jwtx.NewLoginTokens("another-secret")
		require.NoError(t, err)
		signed, _, err := foreign.Issue("a@x.com", "nonce")
		require.NoError(t, err)

		res := f.auth.Authenticate(ctx, signed, testOTP)
		require.Equal(t, result.CodeToken, res.Error.Code)
		require.Equal(t, MsgInvalidToken, res.Error.Message)
		require.Zero(t, f.store.userCalls)
	})

	t.Run("user deleted after send", func(t *testing.T) {
		f := newFixture(t)
		user := f.createUser(t, "Alice", "a@x.com")
		token := f.auth.SendOTP(ctx, "a@x.com")
		require.True(t, token.IsOk())
		require.NoError(t, f.store.Store.Users().DeleteUser(ctx, user.ID))

		res := f.auth.Authenticate(ctx, token.Data, testOTP)
		require.Equal(t, result.CodeAuthentication, res.Error.Code)
		require.Equal(t, MsgUserNotFound, res.Error.Message)
	})

	t.Run("token hash checked before passcode", func(t *testing.T) {
		f := newFixture(t)
		f.createUser(t, "Alice", "a@x.com")

		// A validly signed token whose nonce was never stored.
		forged := f.auth.GenerateLoginChallenge("a@x.com")
		require.True(t, forged.IsOk())
		require.True(t, f.auth.SendOTP(ctx, "a@x.com").IsOk())

		res := f.auth.Authenticate(ctx, forged.Data.Token, "000000")
		require.Equal(t, MsgInvalidTokenSum, res.Error.Message)
	})

	t.Run("wrong passcode", func(t *testing.T) {
		f := newFixture(t)
		user := f.createUser(t, "Alice", "a@x.com")
		token := f.auth.SendOTP(ctx, "a@x.com")
		require.True(t, token.IsOk())

		res := f.auth.Authenticate(ctx, token.Data, "654321")
		require.Equal(t, result.CodeAuthentication, res.Error.Code)
		require.Equal(t, MsgInvalidOTP, res.Error.Message)

		stored, err := f.store.Store.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.True(t, stored.HasChallenge())
	})

	t.Run("no pending challenge", func(t *testing.T) {
		f := newFixture(t)
		f.createUser(t, "Alice", "a@x.com")
		signed, _, err := f.auth.Tokens.Issue("a@x.com", "nonce")
		require.NoError(t, err)

		res := f.auth.Authenticate(ctx, signed, testOTP)
		require.Equal(t, MsgInvalidTokenSum, res.Error.Message)
	})
}

type failingOTP struct{}

func (failingOTP) Generate() (string, error) { return "", errors.New("no entropy") }

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) { return "", errors.New("hash failed") }
func (failingHasher) Compare(string, string) error { return cryptox.ErrHashMismatch }
