package handler

import (
	"net/http"

	"github.com/mviana/trip-prep/backend/internal/analysis"
)

// AnalyzeTrip handles POST /trips/{tripID}/analysis.
// A fresh cached analysis for the trip's current state is returned without
// calling the external provider; otherwise one provider call runs (shared
// with any concurrent request for the same trip state). The ?trigger= query
// parameter records why the analysis was requested.
func (s *Server) AnalyzeTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(r)
	if !ok {
		respondBadRequest(w, "invalid trip id")
		return
	}

	trigger := analysis.TriggerManual
	switch analysis.TriggerReason(r.URL.Query().Get("trigger")) {
	case analysis.TriggerTripChanged:
		trigger = analysis.TriggerTripChanged
	case analysis.TriggerPeriodic:
		trigger = analysis.TriggerPeriodic
	}

	result, err := s.analyses.Analyze(r.Context(), id, trigger)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetAnalysis handles GET /trips/{tripID}/analysis: returns the cached
// analysis when one is still valid for the trip's current state, 404
// otherwise. Never triggers a provider call.
func (s *Server) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(r)
	if !ok {
		respondBadRequest(w, "invalid trip id")
		return
	}

	result, err := s.analyses.Cached(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
