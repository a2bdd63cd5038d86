// Package api implements the HTTP layer for the ClearPath Health backend.
// Handlers are methods on *Server. Each handler file is responsible for one
// resource group and only imports the dependencies it actually uses.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mara2525/clearpath-health-backend/internal/assistant"
	"github.com/mara2525/clearpath-health-backend/internal/catalog"
	"github.com/mara2525/clearpath-health-backend/internal/highlight"
	"github.com/mara2525/clearpath-health-backend/internal/session"
)

// Config holds values read from environment variables at startup.
type Config struct {
	// BaseURL is the public origin the frontend is served from.
	BaseURL string

	// Env is "production", "staging", or "development".
	Env string
}

// Server holds all shared dependencies. Each handler file attaches methods to
// this type and uses only the fields it needs.
type Server struct {
	// catalog is the read-only plan/provider/Q&A/premium lookup surface.
	catalog *catalog.Catalog

	// sessions is the session-scoped KV store (chat history, cached
	// recommendations, mode override).
	sessions session.Store

	// assistant orchestrates chat responses (webhook or demo corpus).
	assistant *assistant.Assistant

	// highlights is the shared highlight registry the assistant publishes to.
	highlights *highlight.Registry

	cfg    Config
	logger *slog.Logger
}

// NewServer constructs the Server and wires the chi router. The returned
// http.Handler is ready to pass to http.ListenAndServe.
func NewServer(
	cat *catalog.Catalog,
	sessions session.Store,
	asst *assistant.Assistant,
	highlights *highlight.Registry,
	cfg Config,
	logger *slog.Logger,
) http.Handler {
	s := &Server{
		catalog:    cat,
		sessions:   sessions,
		assistant:  asst,
		highlights: highlights,
		cfg:        cfg,
		logger:     logger,
	}

	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// ── Global middleware ─────────────────────────────────────────────────────
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggerMiddleware)
	r.Use(s.metricsMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(s.corsMiddleware)
	r.Use(middleware.Timeout(30 * time.Second))

	// ── Health & metrics ──────────────────────────────────────────────────────
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// ── API ───────────────────────────────────────────────────────────────────
	r.Route("/api", func(r chi.Router) {

		// Sessions — anonymous creation, ID is the only credential.
		r.Post("/session", s.handleCreateSession)

		r.Route("/session/{sessionID}", func(r chi.Router) {
			r.Post("/restart", s.handleRestartSession)

			r.Get("/mode", s.handleGetMode)
			r.Put("/mode", s.handleSetMode)

			r.Post("/chat", s.handleChat)
			r.Get("/chat", s.handleChatHistory)
			r.Delete("/chat", s.handleClearChat)

			r.Post("/recommendations", s.handleCreateRecommendations)
			r.Get("/recommendations", s.handleGetRecommendations)
		})

		// Catalog — read-only, no session required.
		r.Get("/plans", s.handleListPlans)
		r.Get("/plans/{planID}", s.handleGetPlan)
		r.Get("/plans/{planID}/providers", s.handlePlanProviders)

		r.Get("/providers", s.handleSearchProviders)
		r.Get("/providers/{providerID}", s.handleGetProvider)

		r.Get("/premiums/{planID}", s.handleGetPremium)

		// Shared highlight state for the presentation layer.
		r.Get("/highlights", s.handleGetHighlights)
	})

	return r
}
