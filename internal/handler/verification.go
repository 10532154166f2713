package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mviana/trip-prep/backend/internal/domain"
	"github.com/mviana/trip-prep/backend/internal/verify"
)

// verificationResponse pairs the engine result with the tasks that were
// actually persisted for the trip.
type verificationResponse struct {
	Result  verify.VerificationResult `json:"result"`
	Created []domain.Task             `json:"created_tasks"`
}

// VerifyTrip handles POST /trips/{tripID}/verification.
func (s *Server) VerifyTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(r)
	if !ok {
		respondBadRequest(w, "invalid trip id")
		return
	}

	result, created, err := s.verification.GenerateTasks(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if created == nil {
		created = []domain.Task{}
	}
	respondJSON(w, http.StatusOK, verificationResponse{Result: result, Created: created})
}

// RefreshTrip handles POST /trips/{tripID}/verification/refresh.
func (s *Server) RefreshTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(r)
	if !ok {
		respondBadRequest(w, "invalid trip id")
		return
	}

	result, created, err := s.verification.RefreshTasks(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if created == nil {
		created = []domain.Task{}
	}
	respondJSON(w, http.StatusOK, verificationResponse{Result: result, Created: created})
}

// CheckUpcomingTrips handles POST /trips/check: batch verification of every
// upcoming trip. Per-trip failures are reported inline, never as a request
// failure.
func (s *Server) CheckUpcomingTrips(w http.ResponseWriter, r *http.Request) {
	results, err := s.verification.CheckUpcomingTrips(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"results": results})
}

// taskListResponse is one page of tasks.
type taskListResponse struct {
	Data       []domain.Task `json:"data"`
	Pagination pagination    `json:"pagination"`
}

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// ListTasks handles GET /trips/{tripID}/tasks.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(r)
	if !ok {
		respondBadRequest(w, "invalid trip id")
		return
	}

	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	tasks, total, err := s.verification.ListTasks(r.Context(), id, params)
	if err != nil {
		respondError(w, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	respondJSON(w, http.StatusOK, taskListResponse{
		Data:       tasks,
		Pagination: pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// CompleteTask handles POST /trips/{tripID}/tasks/{taskID}/complete.
func (s *Server) CompleteTask(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripIDParam(r)
	if !ok {
		respondBadRequest(w, "invalid trip id")
		return
	}
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		respondBadRequest(w, "invalid task id")
		return
	}

	// The service verifies the task belongs to the trip before completing it.
	task, err := s.verification.HandleTaskCompletion(r.Context(), tripID, taskID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) *int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
