// Package api assembles the HTTP router: middleware chain, public
// endpoints, and the authenticated flight plan routes.
package api

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/flightplan/flightplan/internal/handler"
	"github.com/flightplan/flightplan/internal/middleware"
)

// RouterConfig carries the handlers and settings the router wires up.
// Resolver backs the auth middleware on the flight plan routes.
type RouterConfig struct {
	Logger             *slog.Logger
	Base               *handler.Handler
	Health             *handler.HealthHandler
	Users              *handler.UserHandler
	FlightPlans        *handler.FlightPlanHandler
	Resolver           middleware.UserResolver
	CORSAllowedOrigins []string
	BootstrapRateLimit int
}

// NewRouter builds the chi router with all routes and middleware.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recoverer(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         3600,
	}))

	// Health endpoints (no auth required)
	r.Get("/healthz", cfg.Health.Healthz)
	r.Get("/readyz", cfg.Health.Readyz)

	// Root info endpoint
	r.Get("/", cfg.Base.Hello)

	authCfg := middleware.AuthConfig{
		Logger: cfg.Logger,
		Users:  cfg.Resolver,
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Bootstrap endpoint: no bearer token yet, so rate limit by IP.
		r.With(httprate.LimitByIP(cfg.BootstrapRateLimit, time.Minute)).
			Post("/admin/user/create", cfg.Users.Create)

		// Flight plan CRUD (requires authentication)
		r.Route("/flightplan", func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))

			r.Get("/", cfg.FlightPlans.List)
			r.Get("/{id}", cfg.FlightPlans.Get)
			r.Post("/", cfg.FlightPlans.Create)
			r.Put("/", cfg.FlightPlans.Update)
			r.Delete("/{id}", cfg.FlightPlans.Delete)
		})
	})

	// 404 and 405 handlers
	r.NotFound(cfg.Base.NotFound)
	r.MethodNotAllowed(cfg.Base.MethodNotAllowed)

	return r
}
