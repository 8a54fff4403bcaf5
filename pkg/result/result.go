// Package result implements the {data, error} return convention used by every
// business operation. Expected failures are built as *AppError values and
// returned, never raised; Catch converts anything else at a boundary.
package result

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Code is the coarse category of an AppError.
type Code string

const (
	CodeValidation     Code = "VALIDATION"
	CodeAuthentication Code = "AUTHENTICATION"
	CodeAuthorization  Code = "AUTHORIZATION"
	CodeToken          Code = "TOKEN"
	CodeHash           Code = "HASH"
	CodeOTP            Code = "OTP"
	CodeEmail          Code = "EMAIL"
	CodeDB             Code = "DB"
	CodeRateLimit      Code = "RATE_LIMIT"
	CodeUnexpected     Code = "UNEXPECTED"
)

// UnexpectedMessage is the message attached to every error converted by Catch.
const UnexpectedMessage = "An unexpected error occurred."

// Issue is a single structured validation failure.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Context carries diagnostics for an AppError. Err holds the lower-level
// error, Data the relevant input.
type Context struct {
	Issues []Issue
	Err    error
	Data   any
}

// MarshalJSON renders Err as its message so contexts can be logged and
// serialized.
func (c Context) MarshalJSON() ([]byte, error) {
	out := struct {
		Issues []Issue `json:"issues,omitempty"`
		Error  string  `json:"error,omitempty"`
		Data   any     `json:"data"`
	}{
		Issues: c.Issues,
		Data:   c.Data,
	}
	if c.Err != nil {
		out.Error = c.Err.Error()
	}
	return json.Marshal(out)
}

// AppError is the typed application error.
type AppError struct {
	Code    Code
	Message string
	Context Context
}

// New builds an AppError.
func New(code Code, message string, ctx Context) *AppError {
	return &AppError{Code: code, Message: message, Context: ctx}
}

// Unexpected wraps err as an UNEXPECTED AppError, keeping ctx's issues and data.
func Unexpected(err error, ctx Context) *AppError {
	ctx.Err = err
	return New(CodeUnexpected, UnexpectedMessage, ctx)
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Context.Err }

// Is matches another *AppError with the same code and message, so sentinel
// style comparisons work with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// Result is either {Data, nil} or {zero, Error}.
type Result[T any] struct {
	Data  T
	Error *AppError
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{Data: v}
}

// Err wraps a failure.
func Err[T any](e *AppError) Result[T] {
	return Result[T]{Error: e}
}

// IsOk reports whether the result carries data.
func (r Result[T]) IsOk() bool { return r.Error == nil }

// Unwrap splits the result into Go's (value, error) pair. The error is nil
// on success, never a typed nil.
func (r Result[T]) Unwrap() (T, error) {
	if r.Error != nil {
		var zero T
		return zero, r.Error
	}
	return r.Data, nil
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.Error != nil {
		return json.Marshal(struct {
			Data  any       `json:"data"`
			Error *AppError `json:"error"`
		}{Error: r.Error})
	}
	return json.Marshal(struct {
		Data  T   `json:"data"`
		Error any `json:"error"`
	}{Data: r.Data})
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code    Code    `json:"code"`
		Message string  `json:"message"`
		Context Context `json:"context"`
	}{e.Code, e.Message, e.Context})
}

// Signal marks an error that carries control flow (a redirect, for example)
// rather than a failure. Catch hands signals back untouched.
type Signal interface {
	error
	Signal()
}

// Catch converts err into a failed Result. An *AppError anywhere in the chain
// is returned as is, a Signal is returned as the second value for the caller
// to propagate, and any other error becomes UNEXPECTED with ctx attached.
func Catch[T any](err error, ctx Context) (Result[T], error) {
	if err == nil {
		return Result[T]{}, nil
	}

	var sig Signal
	if errors.As(err, &sig) {
		return Result[T]{}, sig
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return Err[T](appErr), nil
	}

	return Err[T](Unexpected(err, ctx)), nil
}
