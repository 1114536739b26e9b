package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// RouterConfig contains the handlers and middleware the router wires up.
type RouterConfig struct {
	AuthHandler         *AuthHandler
	SectorHandler       *SectorHandler
	CollaboratorHandler *CollaboratorHandler
	FeedbackHandler     *FeedbackHandler
	DashboardHandler    *DashboardHandler
	AuthMiddleware      func(http.Handler) http.Handler
	Health              HealthChecker
	MetricsEnabled      bool
	Logger              zerolog.Logger
}

// NewRouter builds the API router. Registration, login and the health
// check are public; everything else requires a valid session token.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.MetricsEnabled {
		r.Use(MetricsMiddleware)
	}

	r.Get("/health", healthHandler(cfg.Health))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", cfg.AuthHandler.Register)
		r.Post("/auth/login", cfg.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthMiddleware)

			r.Get("/auth/me", cfg.AuthHandler.Me)

			r.Route("/setores", func(r chi.Router) {
				r.Get("/", cfg.SectorHandler.List)
				r.Post("/", cfg.SectorHandler.Create)
				r.Get("/{id}", cfg.SectorHandler.Get)
				r.Put("/{id}", cfg.SectorHandler.Update)
				r.Delete("/{id}", cfg.SectorHandler.Delete)
			})

			r.Route("/colaboradores", func(r chi.Router) {
				r.Get("/", cfg.CollaboratorHandler.List)
				r.Post("/", cfg.CollaboratorHandler.Create)
				r.Get("/stats", cfg.CollaboratorHandler.Stats)
				r.Get("/{id}", cfg.CollaboratorHandler.Get)
				r.Put("/{id}", cfg.CollaboratorHandler.Update)
				r.Delete("/{id}", cfg.CollaboratorHandler.Delete)
			})

			r.Route("/feedbacks", func(r chi.Router) {
				r.Get("/", cfg.FeedbackHandler.List)
				r.Post("/", cfg.FeedbackHandler.Create)
				r.Get("/stats", cfg.FeedbackHandler.Stats)
				r.Get("/{id}", cfg.FeedbackHandler.Get)
				r.Put("/{id}", cfg.FeedbackHandler.Update)
				r.Delete("/{id}", cfg.FeedbackHandler.Delete)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/", cfg.DashboardHandler.Index)
				r.Get("/resumo", cfg.DashboardHandler.Overview)
				r.Get("/colaboradores-setor", cfg.DashboardHandler.TeamCount)
				r.Get("/feedbacks-setor", cfg.DashboardHandler.FeedbackCount)
				r.Get("/avaliacoes-setor", cfg.DashboardHandler.RatingCount)
				r.Get("/media-desempenho-setor", cfg.DashboardHandler.AverageRating)
				r.Get("/media-desempenho-setor-mes", cfg.DashboardHandler.AverageRatingThisMonth)
			})
		})
	})

	return r
}

// healthHandler answers liveness probes, checking the store when wired.
func healthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.Health(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, response{Success: false, Message: "database unreachable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, response{Success: true, Message: "healthy"})
	}
}
