// Package httpx holds the HTTP plumbing shared by handlers: middleware
// chaining, JSON responses in the keyed result envelope and rate limiting.
package httpx

import "net/http"

type Middleware func(http.Handler) http.Handler

// Chain wraps h so the first middleware listed runs first.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
