package cryptox

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
)

// OTPLength is the number of decimal digits in a login passcode.
const OTPLength = 6

var ErrInvalidOTPLength = errors.New("cryptox: otp length must be positive")

// OTPGenerator produces one-time passcodes.
type OTPGenerator interface {
	Generate() (string, error)
}

// RandomOTP draws every digit independently and uniformly from 0-9.
// Leading zeros are kept. A zero Digits means OTPLength and a nil Reader
// means crypto/rand.
type RandomOTP struct {
	Digits int
	Reader io.Reader
}

var ten = big.NewInt(10)

// Generate returns a fresh passcode.
func (g RandomOTP) Generate() (string, error) {
	digits := g.Digits
	if digits == 0 {
		digits = OTPLength
	}
	if digits < 0 {
		return "", ErrInvalidOTPLength
	}

	reader := g.Reader
	if reader == nil {
		reader = rand.Reader
	}

	var sb strings.Builder
	sb.Grow(digits)
	for range digits {
		n, err := rand.Int(reader, ten)
		if err != nil {
			return "", fmt.Errorf("cryptox: otp digit: %w", err)
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}
	return sb.String(), nil
}

// StaticOTP always returns the same passcode. Useful in tests and local
// development where the email is never delivered.
type StaticOTP string

func (s StaticOTP) Generate() (string, error) { return string(s), nil }
