package jwtx

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultMaxAge is how long a login token stays valid when the caller does
// not choose a shorter window.
const DefaultMaxAge = 24 * time.Hour

// LoginClaims is the body of a login token. IssuedAt is in milliseconds since
// the Unix epoch, Token is the random nonce whose hash is stored on the user,
// Payload is the email address the token was issued for.
type LoginClaims struct {
	IssuedAt int64  `json:"iat"`
	Token    string `json:"token"`
	Payload  string `json:"payload"`
}

// Login tokens expire by IssuedAt, not by registered claims, so every
// registered time claim reports as absent.
func (LoginClaims) GetExpirationTime() (*jwt.NumericDate, error) { return nil, nil }
func (LoginClaims) GetIssuedAt() (*jwt.NumericDate, error)       { return nil, nil }
func (LoginClaims) GetNotBefore() (*jwt.NumericDate, error)      { return nil, nil }
func (LoginClaims) GetIssuer() (string, error)                   { return "", nil }
func (LoginClaims) GetSubject() (string, error)                  { return "", nil }
func (LoginClaims) GetAudience() (jwt.ClaimStrings, error)       { return nil, nil }

// valid checks the payload schema: a positive issue time and both strings
// present.
func (c LoginClaims) valid() bool {
	return c.IssuedAt > 0 && c.Token != "" && c.Payload != ""
}

// ValidateOptions tune Validate. The zero value enforces expiry with
// DefaultMaxAge; expiry is only ever disabled by setting SkipExpiry.
type ValidateOptions struct {
	MaxAge     time.Duration
	SkipExpiry bool
}

// LoginTokens issues and validates login tokens.
type LoginTokens struct {
	Codec *HMAC
	Now   func() time.Time
}

// NewLoginTokens returns a LoginTokens signing with secret.
func NewLoginTokens(secret string) (*LoginTokens, error) {
	codec, err := NewHMAC(secret)
	if err != nil {
		return nil, err
	}
	return &LoginTokens{Codec: codec, Now: time.Now}, nil
}

func (t *LoginTokens) now() time.Time {
	if t.Now == nil {
		return time.Now()
	}
	return t.Now()
}

// Issue signs {iat: now, token: nonce, payload}.
func (t *LoginTokens) Issue(payload, nonce string) (string, LoginClaims, error) {
	claims := LoginClaims{
		IssuedAt: t.now().UnixMilli(),
		Token:    nonce,
		Payload:  payload,
	}

	signed, err := t.Codec.Sign(claims)
	if err != nil {
		return "", LoginClaims{}, err
	}
	return signed, claims, nil
}

// Validate verifies the signature, checks the payload schema and then the
// age of the token. Failures wrap ErrMalformed, ErrInvalidSig,
// ErrInvalidClaim or ErrExpired.
func (t *LoginTokens) Validate(token string, opts ValidateOptions) (LoginClaims, error) {
	var claims LoginClaims
	if err := t.Codec.Parse(token, &claims); err != nil {
		return LoginClaims{}, err
	}

	if !claims.valid() {
		return LoginClaims{}, fmt.Errorf("%w: login payload", ErrInvalidClaim)
	}

	if opts.SkipExpiry {
		return claims, nil
	}

	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	if t.now().UnixMilli()-claims.IssuedAt > maxAge.Milliseconds() {
		return LoginClaims{}, ErrExpired
	}

	return claims, nil
}
