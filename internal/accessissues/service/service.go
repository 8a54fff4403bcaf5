// Package service implements the login handshake and the organization
// commands. Every operation returns a result.Result; expected failures are
// built as AppErrors and returned, never panicked.
package service

import (
	"strings"

	"github.com/shanco/accessissues/pkg/result"
	"github.com/shanco/accessissues/pkg/validatex"
)

const (
	msgDatabase      = "A database error occurred."
	msgInvalidInputs = "Invalid inputs"
)

func dbError(err error, data any) *result.AppError {
	return result.New(result.CodeDB, msgDatabase, result.Context{Err: err, Data: data})
}

// validate runs v over input, returning a VALIDATION error listing every
// failing field, or nil.
func validate(v *validatex.Validator, input any) *result.AppError {
	if v == nil {
		var err error
		if v, err = validatex.Default(); err != nil {
			return result.Unexpected(err, result.Context{Data: input})
		}
	}

	issues, err := v.Validate(input)
	if err != nil {
		return result.Unexpected(err, result.Context{Data: input})
	}
	if len(issues) > 0 {
		return result.New(result.CodeValidation, msgInvalidInputs, result.Context{Issues: issues, Data: input})
	}
	return nil
}

// NormalizeEmail trims and lower-cases an address so lookups are stable.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
