package authsdk

import (
	"errors"
	"fmt"
)

// Error codes carried by failed envelopes.
const (
	CodeValidation     = "VALIDATION"
	CodeAuthentication = "AUTHENTICATION"
	CodeAuthorization  = "AUTHORIZATION"
	CodeToken          = "TOKEN"
	CodeOTP            = "OTP"
	CodeEmail          = "EMAIL"
	CodeDB             = "DB"
	CodeRateLimit      = "RATE_LIMIT"
	CodeUnexpected     = "UNEXPECTED"
)

// ErrNoData is returned when a successful envelope carries null data.
var ErrNoData = errors.New("authsdk: empty response data")

// APIError is a failed envelope, or a non-JSON failure reported with
// Code empty.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Issues     []Issue
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("authsdk: http %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("authsdk: %s: %s", e.Code, e.Message)
}

// IsCode reports whether err is an *APIError with code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}
