package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptySecret  = errors.New("jwtx: empty secret")
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
	ErrExpired      = errors.New("jwtx: token expired")
)

// HMAC signs and verifies HS256 tokens with a shared server-held secret.
type HMAC struct {
	secret []byte

	// Now overrides the clock used for exp/nbf checks. Nil means time.Now.
	Now func() time.Time
}

// NewHMAC returns an HS256 codec for secret.
func NewHMAC(secret string) (*HMAC, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &HMAC{secret: []byte(secret)}, nil
}

// Sign serializes and signs claims.
func (h *HMAC) Sign(claims jwt.Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature of token and decodes it into claims, which
// must be a pointer. Registered time claims present on claims are enforced.
func (h *HMAC) Parse(token string, claims jwt.Claims) error {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if h.Now != nil {
		opts = append(opts, jwt.WithTimeFunc(h.Now))
	}

	parsed, err := jwt.NewParser(opts...).ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return h.secret, nil
	})
	if err != nil {
		return mapParseError(err)
	}
	if !parsed.Valid {
		return ErrInvalidClaim
	}
	return nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrInvalidSig, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrExpired, err)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidClaim, err)
	}
}
