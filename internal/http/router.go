package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/agungalvian/wjg/internal/http/access"
	"github.com/agungalvian/wjg/internal/http/announcements"
	"github.com/agungalvian/wjg/internal/http/dashboard"
	"github.com/agungalvian/wjg/internal/http/ledger"
	"github.com/agungalvian/wjg/internal/http/matching"
	"github.com/agungalvian/wjg/internal/http/payments"
	"github.com/agungalvian/wjg/internal/http/session"
	"github.com/agungalvian/wjg/internal/http/settings"
	"github.com/agungalvian/wjg/internal/http/users"
	"github.com/agungalvian/wjg/internal/metrics"
)

// Handlers groups the per-area API handlers.
type Handlers struct {
	Session   *session.Handler
	Dashboard *dashboard.Handler
	Ledger    *ledger.Handler
	Payments  *payments.Handler
	Users     *users.Handler
	Settings  *settings.Handler
	Matching  *matching.Handler

	Announcements *announcements.Handler
}

func New(allowedOrigins []string, tokens access.TokenValidator, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Handle("/metrics", metrics.Handler())

	authn := access.Authenticate(tokens)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			h.Session.Routes(r, authn)
		})

		r.Group(func(r chi.Router) {
			r.Use(authn)

			r.Route("/dashboard", h.Dashboard.Routes)
			r.Route("/ledger", h.Ledger.Routes)
			r.Route("/payments", h.Payments.Routes)
			r.Route("/settings", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Settings.Routes(r)
			})
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Users.Routes(r)
			})
			r.Route("/matching", h.Matching.Routes)
			r.Route("/announcements", h.Announcements.Routes)
		})
	})

	return router
}
