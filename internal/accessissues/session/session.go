// Package session keeps the signed-in identity in an HS256-signed cookie and
// provides the middlewares that read it.
package session

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shanco/accessissues/internal/accessissues/domain"
	"github.com/shanco/accessissues/pkg/jwtx"
	"github.com/shanco/accessissues/pkg/result"
)

const (
	CookieName = "shanco_session"
	MaxAge     = 30 * 24 * time.Hour

	LoginPath = "/login"

	MsgUnableToGetSession = "Unable to get session."
)

// Claims is the cookie body. Data is nil for a flash-only cookie.
type Claims struct {
	Data  *domain.SessionData `json:"data,omitempty"`
	Flash string              `json:"flash,omitempty"`
	jwt.RegisteredClaims
}

// Manager reads and writes the session cookie.
type Manager struct {
	Codec *jwtx.HMAC

	// Secure marks the cookie HTTPS only; set in production.
	Secure bool
	MaxAge time.Duration
	Now    func() time.Time
}

func NewManager(secret string, secure bool) (*Manager, error) {
	codec, err := jwtx.NewHMAC(secret)
	if err != nil {
		return nil, err
	}
	m := &Manager{Codec: codec, Secure: secure, MaxAge: MaxAge, Now: time.Now}
	codec.Now = m.now
	return m, nil
}

func (m *Manager) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

func (m *Manager) maxAge() time.Duration {
	if m.MaxAge <= 0 {
		return MaxAge
	}
	return m.MaxAge
}

// read returns the verified claims of the request cookie.
func (m *Manager) read(r *http.Request) (Claims, error) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return Claims{}, err
	}
	var claims Claims
	if err := m.Codec.Parse(c.Value, &claims); err != nil {
		return Claims{}, err
	}
	return claims, nil
}

func (m *Manager) write(w http.ResponseWriter, claims Claims) error {
	now := m.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.maxAge()))

	signed, err := m.Codec.Sign(claims)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.maxAge().Seconds()),
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Set stores data as the session, keeping a pending flash message.
func (m *Manager) Set(w http.ResponseWriter, r *http.Request, data domain.SessionData) error {
	claims, _ := m.read(r)
	return m.write(w, Claims{Data: &data, Flash: claims.Flash})
}

// Get returns the session data, or AUTHENTICATION "Unable to get session."
// when the cookie is missing, tampered with, expired or flash-only.
func (m *Manager) Get(r *http.Request) result.Result[domain.SessionData] {
	claims, err := m.read(r)
	if err == nil && claims.Data == nil {
		err = http.ErrNoCookie
	}
	if err != nil {
		return result.Err[domain.SessionData](result.New(result.CodeAuthentication, MsgUnableToGetSession, result.Context{Err: err}))
	}
	return result.Ok(*claims.Data)
}

// Destroy expires the cookie.
func (m *Manager) Destroy(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetFlash attaches a one-time message to the session.
func (m *Manager) SetFlash(w http.ResponseWriter, r *http.Request, message string) error {
	claims, _ := m.read(r)
	return m.write(w, Claims{Data: claims.Data, Flash: message})
}

// PopFlash returns the pending flash message and removes it from the
// cookie.
func (m *Manager) PopFlash(w http.ResponseWriter, r *http.Request) (string, error) {
	claims, err := m.read(r)
	if err != nil || claims.Flash == "" {
		return "", nil
	}
	if claims.Data == nil {
		m.Destroy(w)
		return claims.Flash, nil
	}
	return claims.Flash, m.write(w, Claims{Data: claims.Data})
}

// Redirect is a control-flow signal asking the boundary to send the client
// elsewhere.
type Redirect struct {
	Location string
}

func (r *Redirect) Error() string { return "redirect to " + r.Location }
func (*Redirect) Signal()         {}

var _ result.Signal = (*Redirect)(nil)

// LoginRedirect is the login page returning to path afterwards.
func LoginRedirect(path string) string {
	if path == "" {
		return LoginPath
	}
	return LoginPath + "?redirectTo=" + url.QueryEscape(path)
}

// Require returns the session or a *Redirect to the login page that comes
// back to the requested path.
func (m *Manager) Require(r *http.Request) (domain.SessionData, error) {
	res := m.Get(r)
	if res.IsOk() {
		return res.Data, nil
	}
	return domain.SessionData{}, &Redirect{Location: LoginRedirect(r.URL.RequestURI())}
}

// IsRedirect reports whether err carries a *Redirect.
func IsRedirect(err error) (*Redirect, bool) {
	var rd *Redirect
	ok := errors.As(err, &rd)
	return rd, ok
}
