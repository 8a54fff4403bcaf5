package cryptox

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomOTP(t *testing.T) {
	g := RandomOTP{}

	for range 50 {
		otp, err := g.Generate()
		require.NoError(t, err)
		require.Len(t, otp, OTPLength)
		for _, c := range otp {
			require.True(t, c >= '0' && c <= '9', "unexpected rune %q", c)
		}
	}
}

func TestRandomOTPKeepsLeadingZeros(t *testing.T) {
	// rand.Int reads a single byte per digit for n=10 and rejects values
	// above the mask, so a stream of zero bytes yields all zeros.
	g := RandomOTP{Reader: bytes.NewReader(make([]byte, 64))}

	otp, err := g.Generate()
	require.NoError(t, err)
	require.Equal(t, "000000", otp)
}

func TestRandomOTPDigitsCovered(t *testing.T) {
	seen := make(map[rune]bool)
	g := RandomOTP{Digits: 12}

	for range 100 {
		otp, err := g.Generate()
		require.NoError(t, err)
		for _, c := range otp {
			seen[c] = true
		}
	}

	require.Len(t, seen, 10, "every digit should appear across many draws")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestRandomOTPErrors(t *testing.T) {
	t.Run("reader failure", func(t *testing.T) {
		_, err := RandomOTP{Reader: failingReader{}}.Generate()
		require.Error(t, err)
	})

	t.Run("negative length", func(t *testing.T) {
		_, err := RandomOTP{Digits: -1}.Generate()
		require.ErrorIs(t, err, ErrInvalidOTPLength)
	})
}

func TestStaticOTP(t *testing.T) {
	otp, err := StaticOTP("123456").Generate()
	require.NoError(t, err)
	require.Equal(t, "123456", otp)
}
