package domain

import "time"

// LoginChallenge is one issued login attempt. Token and OTP are plaintext and
// leave the service only through the response (Token) and the email (OTP);
// the hashes are what gets stored.
type LoginChallenge struct {
	Token     string
	TokenHash string
	OTP       string
	OTPHash   string
	IssuedAt  time.Time
}
