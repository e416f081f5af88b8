package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/carefinder/carefinder/internal/auth/service"
	"github.com/carefinder/carefinder/internal/auth/store"
	"github.com/carefinder/carefinder/pkg/httpx"
	"github.com/carefinder/carefinder/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	adminRole    string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService  *service.AuthService
	UserService  *service.UserService
	RolesService *service.RolesService
}

func NewRouter(
	adminRole, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		adminRole:    adminRole,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerRoles()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /login - strict rate limit by IP (authentication attempts)
	loginHandler := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /register - strict rate limit by IP (public signup endpoint)
	registerHandler := &RegisterHandler{UserService: r.UserService}
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /confirm - moderate rate limit by IP
	confirmHandler := &ConfirmHandler{UserService: r.UserService}
	r.Mux.Handle("POST /v1/auth/confirm",
		httpx.Chain(confirmHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UserInfoHandler{
		UserService:  r.UserService,
		RolesService: r.RolesService,
	}

	// Authenticated endpoint - lenient rate limit by user
	secured := httpx.Chain(h,
		AuthnMiddleware(r.AuthService),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	r.Mux.Handle("GET /v1/userinfo", secured)
}

func (r *Router) registerRoles() {
	h := &RolesHandler{RolesService: r.RolesService}

	// Admin-only endpoint
	secured := httpx.Chain(h,
		AuthnMiddleware(r.AuthService),
		httpx.RequireAnyRole(r.adminRole),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /v1/roles", secured)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
