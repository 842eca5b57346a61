// Package httpapi provides the HTTP/JSON API for the backend.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/simaogato/patrimonio-backend/internal/usecase/allocation"
	"github.com/simaogato/patrimonio-backend/internal/usecase/dashboard"
	"github.com/simaogato/patrimonio-backend/internal/usecase/goal"
	"github.com/simaogato/patrimonio-backend/internal/usecase/investment"
	"github.com/simaogato/patrimonio-backend/internal/usecase/reference"
)

// Config holds the server's dependencies
type Config struct {
	Log         zerolog.Logger
	JWTSecret   string
	Investments *investment.InvestmentService
	Goals       *goal.GoalService
	Allocation  *allocation.AllocationService
	Reference   *reference.ReferenceService
	Dashboard   *dashboard.DashboardService
}

// Server routes HTTP requests to the usecase services
type Server struct {
	router      *chi.Mux
	log         zerolog.Logger
	jwtSecret   string
	investments *investment.InvestmentService
	goals       *goal.GoalService
	allocation  *allocation.AllocationService
	reference   *reference.ReferenceService
	dashboard   *dashboard.DashboardService
}

// New creates a new Server instance and mounts its routes
func New(cfg Config) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		log:         cfg.Log.With().Str("component", "httpapi").Logger(),
		jwtSecret:   cfg.JWTSecret,
		investments: cfg.Investments,
		goals:       cfg.Goals,
		allocation:  cfg.Allocation,
		reference:   cfg.Reference,
		dashboard:   cfg.Dashboard,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Route("/investments", func(r chi.Router) {
			r.Get("/", s.handleListInvestments)
			r.Post("/", s.handleCreateInvestment)
			r.Put("/{id}", s.handleUpdateInvestment)
			r.Delete("/{id}", s.handleDeleteInvestment)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", s.handleListGoals)
			r.Post("/", s.handleCreateGoal)
			r.Put("/{id}", s.handleUpdateGoal)
			r.Delete("/{id}", s.handleDeleteGoal)
			r.Post("/{id}/recalc", s.handleRecalcGoal)
		})

		r.Route("/allocation-targets", func(r chi.Router) {
			r.Get("/", s.handleListAllocationTargets)
			r.Put("/", s.handleUpsertAllocationTarget)
			r.Delete("/{id}", s.handleDeleteAllocationTarget)
		})

		r.Get("/asset-classes", s.handleListAssetClasses)
		r.Get("/institutions", s.handleListInstitutions)
		r.Get("/dashboard", s.handleDashboard)
	})

	return s
}

// Handler returns the root http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "patrimonio",
	})
}
