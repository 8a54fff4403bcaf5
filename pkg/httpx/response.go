package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shanco/accessissues/pkg/result"
	"github.com/shanco/accessissues/pkg/slogx"
)

// MaxBodyBytes bounds JSON request bodies.
const MaxBodyBytes = 1 << 20

var ErrEmptyBody = errors.New("httpx: empty request body")

// WriteJSON writes v as JSON with status code and no-cache headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache marks a response as uncacheable; every response here is
// per-session.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// DecodeJSON reads a single JSON object from the request body into v.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("httpx: decode body: %w", err)
	}
	return nil
}

// WriteResult writes res in the keyed envelope. Failures are logged with
// their full context, mapped to a status by code and stripped of everything
// but validation issues before reaching the client.
func WriteResult[T any](w http.ResponseWriter, r *http.Request, key string, status int, res result.Result[T]) {
	if res.Error != nil {
		result.Log(r.Context(), slogx.FromContext(r.Context()), res.Error)
		status = result.StatusCode(res.Error.Code)
	}
	WriteJSON(w, status, result.Serialize(res, key).Public())
}

// WriteCaught writes err as a failed result through result.Catch. A
// result.Signal is not written; it is returned for the caller to act on.
func WriteCaught[T any](w http.ResponseWriter, r *http.Request, key string, err error) error {
	res, sig := result.Catch[T](err, result.Context{})
	if sig != nil {
		return sig
	}
	WriteResult(w, r, key, http.StatusOK, res)
	return nil
}

// WriteError writes a failed result of unknown data type.
func WriteError(w http.ResponseWriter, r *http.Request, key string, e *result.AppError) {
	WriteResult(w, r, key, http.StatusOK, result.Err[struct{}](e))
}
