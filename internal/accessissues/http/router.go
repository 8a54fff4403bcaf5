package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shanco/accessissues/internal/accessissues/service"
	"github.com/shanco/accessissues/internal/accessissues/session"
	"github.com/shanco/accessissues/internal/accessissues/store"
	"github.com/shanco/accessissues/pkg/httpx"
	"github.com/shanco/accessissues/pkg/slogx"
	"github.com/shanco/accessissues/pkg/validatex"

	_ "github.com/shanco/accessissues/api/accessissues" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store               store.Store
	Sessions            *session.Manager
	Validator           *validatex.Validator
	AuthService         *service.AuthService
	OrganizationService *service.OrganizationService
}

func NewRouter(buildVersion string, st store.Store, sessions *session.Manager, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		Sessions:     sessions,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ApplyRoutes registers every handler. A nil Validator is replaced with the
// shared default.
func (r *Router) ApplyRoutes() error {
	if r.Validator == nil {
		v, err := validatex.Default()
		if err != nil {
			return fmt.Errorf("failed to initialize validator: %w", err)
		}
		r.Validator = v
	}

	r.registerLogin()
	r.registerSession()
	r.registerOrgs()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpx.Chain(httpSwagger.Handler(),
		httpx.RateLimitByIP(httpx.PublicLimit),
	))
	return nil
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Access Issues API
//	@version					0.1.0
//	@description				Passwordless email login and organization administration for the Access Issues climbing access tracker.
//	@description
//	@description				Sign in with POST /v1/login and POST /v1/login/{token}; the session lives in the shanco_session cookie.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						shanco_session
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerLogin() {
	h := &LoginHandler{
		AuthService: r.AuthService,
		Sessions:    r.Sessions,
		Validator:   r.Validator,
	}

	// Sending codes costs an email: strict per address and per target inbox.
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(http.HandlerFunc(h.HandleSendCode),
			httpx.RateLimitByIP(httpx.ModerateLimit),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)

	// Passcode guesses are limited per token so rotating addresses does not
	// help brute force the 6 digits.
	r.Mux.Handle("POST /v1/login/{token}",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			httpx.RateLimitByIP(httpx.ModerateLimit),
			httpx.RateLimitByPathValue(httpx.StrictLimit, "token"),
		),
	)
}

func (r *Router) registerSession() {
	h := &SessionHandler{Sessions: r.Sessions}

	r.Mux.Handle("GET /v1/session",
		httpx.Chain(http.HandlerFunc(h.HandleSession),
			r.Sessions.Authenticated,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerOrgs() {
	h := &OrgsHandler{
		OrganizationService: r.OrganizationService,
		Sessions:            r.Sessions,
	}

	public := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.Sessions.WithSession,
			httpx.RateLimitByIP(httpx.PublicLimit),
		)
	}
	read := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.Sessions.Authenticated,
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}
	// The admin gate lives in the service.
	write := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.Sessions.Authenticated,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /v1/orgs", public(h.HandleList))
	r.Mux.Handle("GET /v1/orgs/{slug}", public(h.HandleGet))
	r.Mux.Handle("GET /v1/orgs/{slug}/role", read(h.HandleRole))
	r.Mux.Handle("GET /v1/orgs/{slug}/members", read(h.HandleMembers))
	r.Mux.Handle("POST /v1/orgs/{slug}/members", write(h.HandleAddMember))
	r.Mux.Handle("DELETE /v1/orgs/{slug}/members/{userID}", write(h.HandleRemoveMember))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
