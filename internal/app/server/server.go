// Package server assembles the demo EMS backend: fixture data behind the
// same REST surface the client core talks to in production.
package server

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"ems/internal/fixtures"
	"ems/internal/platform/config"
	"ems/internal/platform/metrics"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/handlers/attendance"
	"ems/internal/transport/http/handlers/authn"
	"ems/internal/transport/http/handlers/employees"
	"ems/internal/transport/http/handlers/leave"
	"ems/internal/transport/http/handlers/tasks"
	"ems/internal/transport/http/middleware"
)

type App struct {
	Config   config.Config
	Fixtures *fixtures.Store
	Metrics  *metrics.Collector
	Router   http.Handler
}

func New(cfg config.Config) (*App, error) {
	fix, err := fixtures.New()
	if err != nil {
		return nil, err
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	secret := cfg.JWTSecret
	if secret == "" {
		secret = "dev-secret"
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.StripSlashes)
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.Metrics(collector))
	router.Use(middleware.Auth(secret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if collector != nil {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.WriteJSON(w, http.StatusOK, collector.Snapshot())
		})
	}

	router.Route("/api", func(r chi.Router) {
		authn.NewHandler(fix, secret, cfg.TokenTTL).RegisterRoutes(r)
		employees.NewHandler(fix).RegisterRoutes(r)
		attendance.NewHandler(fix).RegisterRoutes(r)
		leave.NewHandler(fix).RegisterRoutes(r)
		tasks.NewHandler(fix).RegisterRoutes(r)
	})

	return &App{Config: cfg, Fixtures: fix, Metrics: collector, Router: router}, nil
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app, err := New(cfg)
	if err != nil {
		log.Fatalf("failed to start app: %v", err)
	}

	log.Printf("EMS demo backend listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
