package session

import (
	"context"
	"net/http"
	"strings"

	"github.com/shanco/accessissues/internal/accessissues/domain"
	"github.com/shanco/accessissues/pkg/httpx"
	"github.com/shanco/accessissues/pkg/result"
)

type ctxKey struct{}

func WithContext(ctx context.Context, data domain.SessionData) context.Context {
	return context.WithValue(ctx, ctxKey{}, data)
}

// FromContext returns the session put there by WithSession or
// Authenticated.
func FromContext(ctx context.Context) (domain.SessionData, bool) {
	data, ok := ctx.Value(ctxKey{}).(domain.SessionData)
	return data, ok
}

func attach(r *http.Request, data domain.SessionData) *http.Request {
	ctx := WithContext(r.Context(), data)
	ctx = httpx.WithUserID(ctx, data.UserID)
	return r.WithContext(ctx)
}

// WithSession loads the session into the context when there is one.
func (m *Manager) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if res := m.Get(r); res.IsOk() {
			r = attach(r, res.Data)
		}
		next.ServeHTTP(w, r)
	})
}

// Authenticated rejects requests without a session. Browsers navigating to
// a page are redirected to the login page; API clients get a 401 envelope
// with the same location.
func (m *Manager) Authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := m.Require(r)
		if err == nil {
			next.ServeHTTP(w, attach(r, data))
			return
		}

		sig := httpx.WriteCaught[struct{}](w, r, "session", err)
		if sig == nil {
			return
		}

		if rd, ok := IsRedirect(sig); ok {
			if wantsHTML(r) {
				http.Redirect(w, r, rd.Location, http.StatusSeeOther)
				return
			}
			w.Header().Set("Location", rd.Location)
		}
		httpx.WriteError(w, r, "session", result.New(result.CodeAuthentication, MsgUnableToGetSession, result.Context{}))
	})
}

// Logout destroys the session and sends the client to the login page.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) {
	m.Destroy(w)
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

func wantsHTML(r *http.Request) bool {
	return r.Method == http.MethodGet && strings.Contains(r.Header.Get("Accept"), "text/html")
}
