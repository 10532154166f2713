package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mviana/trip-prep/backend/internal/domain"
)

// tripIDParam parses the {tripID} URL parameter.
func tripIDParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "tripID"))
	return id, err == nil
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var trip domain.Trip
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	respondJSON(w, http.StatusOK, trips)
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(r)
	if !ok {
		respondBadRequest(w, "invalid trip id")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PUT /trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(r)
	if !ok {
		respondBadRequest(w, "invalid trip id")
		return
	}

	var trip domain.Trip
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}
	trip.ID = id

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(r)
	if !ok {
		respondBadRequest(w, "invalid trip id")
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	// The database cascade removed the trip's rows; the analysis layer keeps
	// in-process state per trip and has to be told explicitly.
	s.analyses.Forget(id)
	w.WriteHeader(http.StatusNoContent)
}

// SetInsurance handles PUT /trips/{tripID}/insurance.
func (s *Server) SetInsurance(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(r)
	if !ok {
		respondBadRequest(w, "invalid trip id")
		return
	}

	var ins domain.Insurance
	if err := json.NewDecoder(r.Body).Decode(&ins); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}
	ins.TripID = id

	saved, err := s.trips.SetInsurance(r.Context(), ins)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}
