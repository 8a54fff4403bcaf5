package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shanco/accessissues/internal/accessissues/domain"
	"github.com/shanco/accessissues/internal/accessissues/mail"
	"github.com/shanco/accessissues/internal/accessissues/store"
	"github.com/shanco/accessissues/pkg/cryptox"
	"github.com/shanco/accessissues/pkg/jwtx"
	"github.com/shanco/accessissues/pkg/mailer"
	"github.com/shanco/accessissues/pkg/result"
	"github.com/shanco/accessissues/pkg/slogx"
	"github.com/shanco/accessissues/pkg/validatex"
)

// DefaultLoginMaxAge is how long a login token and its passcode stay valid.
const DefaultLoginMaxAge = 20 * time.Minute

const (
	MsgInvalidToken    = "Invalid Token"
	MsgExpired         = "Expired"
	MsgUserNotFound    = "Unable to find user to authenticate."
	MsgInvalidTokenSum = "Invalid token hash"
	MsgInvalidOTP      = "Invalid OTP"
	MsgInvalidEmail    = "Invalid email"
	MsgSendEmailFailed = "Failed to send email"
)

// AuthService runs the OTP email login handshake.
type AuthService struct {
	Store     store.Store
	Tokens    *jwtx.LoginTokens
	Hasher    cryptox.Hasher
	OTP       cryptox.OTPGenerator
	Mailer    mailer.Sender
	Templates *mail.Templates
	Validator *validatex.Validator

	// From is the sender address of login emails.
	From string

	// MaxAge bounds the age of a login token. Zero means DefaultLoginMaxAge.
	MaxAge time.Duration
}

func (s *AuthService) maxAge() time.Duration {
	if s.MaxAge <= 0 {
		return DefaultLoginMaxAge
	}
	return s.MaxAge
}

func (s *AuthService) tokenOptions() jwtx.ValidateOptions {
	return jwtx.ValidateOptions{MaxAge: s.maxAge()}
}

type emailData struct {
	Email string `json:"email"`
}

// GenerateLoginChallenge issues a signed token for email and a fresh
// passcode, together with the hashes to store. Nothing is persisted.
func (s *AuthService) GenerateLoginChallenge(email string) result.Result[domain.LoginChallenge] {
	ctx := result.Context{Data: emailData{email}}

	// 1. Random nonce, signed into the token together with the email.
	nonce, err := cryptox.NewNonce()
	if err != nil {
		ctx.Err = err
		return result.Err[domain.LoginChallenge](result.New(result.CodeToken, "Unable to generate token", ctx))
	}

	tokenHash, err := s.Hasher.Hash(nonce)
	if err != nil {
		ctx.Err = err
		return result.Err[domain.LoginChallenge](result.New(result.CodeHash, "Unable to hash token", ctx))
	}

	signed, claims, err := s.Tokens.Issue(email, nonce)
	if err != nil {
		ctx.Err = err
		return result.Err[domain.LoginChallenge](result.New(result.CodeToken, "Unable to sign token", ctx))
	}

	// 2. Passcode and its hash.
	otp, err := s.OTP.Generate()
	if err != nil {
		ctx.Err = err
		return result.Err[domain.LoginChallenge](result.New(result.CodeOTP, "Unable to generate OTP", ctx))
	}

	otpHash, err := s.Hasher.Hash(otp)
	if err != nil {
		ctx.Err = err
		return result.Err[domain.LoginChallenge](result.New(result.CodeHash, "Unable to hash OTP", ctx))
	}

	return result.Ok(domain.LoginChallenge{
		Token:     signed,
		TokenHash: tokenHash,
		OTP:       otp,
		OTPHash:   otpHash,
		IssuedAt:  time.UnixMilli(claims.IssuedAt).UTC(),
	})
}

// SendOTP starts a login for email: it stores a new challenge, overwriting
// any pending one, emails the passcode and returns the signed token.
// Concurrent calls for one email race; the last stored challenge wins.
func (s *AuthService) SendOTP(ctx context.Context, email string) result.Result[string] {
	log := slogx.FromContext(ctx)
	email = NormalizeEmail(email)
	errCtx := result.Context{Data: emailData{email}}

	// 1. Validate the address.
	v := s.Validator
	if v == nil {
		var err error
		if v, err = validatex.Default(); err != nil {
			return result.Err[string](result.Unexpected(err, errCtx))
		}
	}
	issues, err := v.Var(email, "required,email")
	if err != nil {
		return result.Err[string](result.Unexpected(err, errCtx))
	}
	if len(issues) > 0 {
		errCtx.Issues = issues
		return result.Err[string](result.New(result.CodeOTP, MsgInvalidEmail, errCtx))
	}

	// 2. Generate the challenge.
	challenge := s.GenerateLoginChallenge(email)
	if !challenge.IsOk() {
		return result.Err[string](challenge.Error)
	}
	c := challenge.Data

	// 3. Persist the hashes on the user.
	err = s.Store.Users().SetChallenge(ctx, email, c.TokenHash, c.OTPHash, c.IssuedAt)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("login requested for unknown email", slog.String("email", email))
			return result.Err[string](result.New(result.CodeOTP, MsgInvalidEmail, errCtx))
		}
		log.Error("failed to store login challenge", slog.Any("error", err))
		return result.Err[string](dbError(err, errCtx.Data))
	}

	// 4. Email the passcode.
	rendered, err := s.Templates.LoginCode(c.OTP, s.maxAge())
	if err != nil {
		return result.Err[string](result.Unexpected(err, errCtx))
	}

	err = s.Mailer.Send(ctx, mailer.Message{
		From:    s.From,
		To:      []string{email},
		Subject: rendered.Subject,
		Text:    rendered.Text,
		HTML:    rendered.HTML,
	})
	if err != nil {
		log.Error("failed to send login email", slog.String("email", email), slog.Any("error", err))
		errCtx.Err = err
		return result.Err[string](result.New(result.CodeEmail, MsgSendEmailFailed, errCtx))
	}

	log.Debug("login code sent", slog.String("email", email))
	return result.Ok(c.Token)
}

// Authenticate verifies a signed login token and the passcode that was
// emailed with it. Checks run in a fixed order and the first failure is
// reported: token signature and schema, token age, user lookup, token hash,
// passcode hash. A malformed token never reaches the store. On success the
// challenge is cleared so the pair cannot be replayed.
func (s *AuthService) Authenticate(ctx context.Context, token, otp string) result.Result[domain.SessionData] {
	log := slogx.FromContext(ctx)

	// 1. Signature, schema and age.
	claims, err := s.Tokens.Validate(token, s.tokenOptions())
	if err != nil {
		msg := MsgInvalidToken
		if errors.Is(err, jwtx.ErrExpired) {
			msg = MsgExpired
		}
		return result.Err[domain.SessionData](result.New(result.CodeToken, msg, result.Context{Err: err}))
	}

	data := emailData{claims.Payload}

	// 2. The user the token was issued for.
	user, err := s.Store.Users().GetUserByEmail(ctx, claims.Payload)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return result.Err[domain.SessionData](result.New(result.CodeAuthentication, MsgUserNotFound, result.Context{Data: data}))
		}
		log.Error("failed to load user for authentication", slog.Any("error", err))
		return result.Err[domain.SessionData](dbError(err, data))
	}

	// 3. Token hash strictly before the passcode.
	if err := s.Hasher.Compare(claims.Token, deref(user.TokenHash)); err != nil {
		return result.Err[domain.SessionData](result.New(result.CodeAuthentication, MsgInvalidTokenSum, result.Context{Err: err, Data: data}))
	}

	if err := s.Hasher.Compare(otp, deref(user.OTPHash)); err != nil {
		return result.Err[domain.SessionData](result.New(result.CodeAuthentication, MsgInvalidOTP, result.Context{Err: err, Data: data}))
	}

	// 4. Consume the challenge.
	if err := s.Store.Users().ClearChallenge(ctx, user.ID); err != nil {
		log.Error("failed to clear login challenge", slog.String("user_id", user.ID), slog.Any("error", err))
		return result.Err[domain.SessionData](dbError(err, data))
	}

	log.Info("user authenticated", slog.String("user_id", user.ID))
	return result.Ok(domain.SessionData{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
