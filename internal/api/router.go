package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/secondbrain-dev/secondbrain/internal/auth"
	"github.com/secondbrain-dev/secondbrain/internal/logger"
	"github.com/secondbrain-dev/secondbrain/internal/store"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	AuthMiddleware *auth.Middleware
	Tokens         *auth.Tokens
	Google         auth.GoogleVerifier
	UserStore      *store.UserStore
	ContentStore   *store.ContentStore
	ShareLinkStore *store.ShareLinkStore
}

// NewRouter assembles the full chi router: standard middleware, a liveness
// probe, and the /api/v1 JSON API.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(logger.RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Mount("/api/v1", newAPIRouter(deps))

	return r
}

// newAPIRouter builds the /api/v1 sub-router. Open routes (signup, signin,
// google-auth, public share resolution) live beside a group that requires the
// identity token.
func newAPIRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	// All API responses are JSON.
	r.Use(jsonContentType)

	r.Group(func(authed chi.Router) {
		authed.Use(deps.AuthMiddleware.RequireUser)

		registerIdentityRoutes(r, authed, deps.UserStore, deps.Tokens, deps.Google)
		registerContentRoutes(authed, deps.ContentStore)
		registerShareRoutes(r, authed, deps.ShareLinkStore, deps.ContentStore, deps.UserStore)
	})

	return r
}

// jsonContentType sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
