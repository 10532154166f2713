// Package handler implements the HTTP handlers for the trip preparation API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, verification.go, analysis.go, ...) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mviana/trip-prep/backend/internal/analysis"
	"github.com/mviana/trip-prep/backend/internal/domain"
	"github.com/mviana/trip-prep/backend/internal/service"
	"github.com/mviana/trip-prep/backend/internal/verify"
	"github.com/mviana/trip-prep/backend/spec"
)

// TripServicer defines the trip operations the handler depends on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetInsurance(ctx context.Context, ins domain.Insurance) (domain.Insurance, error)
}

// VerificationServicer defines the verification operations the handler
// depends on.
type VerificationServicer interface {
	GenerateTasks(ctx context.Context, tripID uuid.UUID) (verify.VerificationResult, []domain.Task, error)
	RefreshTasks(ctx context.Context, tripID uuid.UUID) (verify.VerificationResult, []domain.Task, error)
	HandleTaskCompletion(ctx context.Context, tripID, taskID uuid.UUID) (domain.Task, error)
	ListTasks(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Task, int64, error)
	CheckUpcomingTrips(ctx context.Context) ([]service.TripCheckResult, error)
}

// AnalysisServicer defines the AI analysis operations the handler depends on.
type AnalysisServicer interface {
	Analyze(ctx context.Context, tripID uuid.UUID, trigger analysis.TriggerReason) (analysis.Analysis, error)
	Cached(ctx context.Context, tripID uuid.UUID) (analysis.Analysis, error)
	Forget(tripID uuid.UUID)
}

// ExportServicer defines the checklist export operation.
type ExportServicer interface {
	Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	trips        TripServicer
	verification VerificationServicer
	analyses     AnalysisServicer
	exports      ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, verification VerificationServicer, analyses AnalysisServicer, exports ExportServicer) *Server {
	return &Server{
		trips:        trips,
		verification: verification,
		analyses:     analyses,
		exports:      exports,
	}
}

// Routes mounts every endpoint on a fresh chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.Health)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(spec.OpenAPI)
	})

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)
		r.Post("/check", s.CheckUpcomingTrips)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Put("/insurance", s.SetInsurance)

			r.Post("/verification", s.VerifyTrip)
			r.Post("/verification/refresh", s.RefreshTrip)

			r.Get("/tasks", s.ListTasks)
			r.Post("/tasks/{taskID}/complete", s.CompleteTask)

			r.Post("/analysis", s.AnalyzeTrip)
			r.Get("/analysis", s.GetAnalysis)

			r.Get("/export", s.ExportTrip)
		})
	})

	return r
}

// Health reports liveness.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
