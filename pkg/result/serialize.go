package result

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// SerializedError is the wire form of an AppError.
type SerializedError struct {
	Code    Code     `json:"code"`
	Message string   `json:"message"`
	Context *Context `json:"context,omitempty"`
}

// SerializedResult is a Result tagged with the key of the operation that
// produced it, so a client can tell concurrent submissions apart.
type SerializedResult[T any] struct {
	Key   string           `json:"key"`
	Data  *T               `json:"data"`
	Error *SerializedError `json:"error"`
}

// Serialize converts res into its keyed wire form, context included.
func Serialize[T any](res Result[T], key string) SerializedResult[T] {
	if res.Error != nil {
		ctx := res.Error.Context
		return SerializedResult[T]{
			Key: key,
			Error: &SerializedError{
				Code:    res.Error.Code,
				Message: res.Error.Message,
				Context: &ctx,
			},
		}
	}
	data := res.Data
	return SerializedResult[T]{Key: key, Data: &data}
}

// Public drops everything from the context except validation issues. Hashes,
// tokens and raw inputs stay on the server.
func (s SerializedResult[T]) Public() SerializedResult[T] {
	if s.Error == nil || s.Error.Context == nil {
		return s
	}
	if len(s.Error.Context.Issues) == 0 {
		s.Error = &SerializedError{Code: s.Error.Code, Message: s.Error.Message}
		return s
	}
	s.Error = &SerializedError{
		Code:    s.Error.Code,
		Message: s.Error.Message,
		Context: &Context{Issues: s.Error.Context.Issues},
	}
	return s
}

// Log writes one structured line for e: timestamp, code, message and the
// JSON-encoded context.
func Log(ctx context.Context, logger *slog.Logger, e *AppError) {
	if e == nil {
		return
	}

	contextJSON, err := json.Marshal(e.Context)
	if err != nil {
		contextJSON = []byte(`{}`)
	}

	logger.LogAttrs(ctx, levelFor(e.Code), "app error",
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339Nano)),
		slog.String("code", string(e.Code)),
		slog.String("message", e.Message),
		slog.String("context", string(contextJSON)),
	)
}

func levelFor(code Code) slog.Level {
	switch code {
	case CodeDB, CodeUnexpected, CodeEmail:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// StatusCode maps an error code onto the HTTP status a boundary should use.
func StatusCode(code Code) int {
	switch code {
	case CodeValidation, CodeOTP:
		return http.StatusBadRequest
	case CodeAuthentication, CodeToken, CodeHash:
		return http.StatusUnauthorized
	case CodeAuthorization:
		return http.StatusForbidden
	case CodeEmail:
		return http.StatusBadGateway
	case CodeRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
