package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mviana/trip-prep/backend/internal/analysis"
	"github.com/mviana/trip-prep/backend/internal/domain"
	"github.com/mviana/trip-prep/backend/internal/repo"
)

// ErrAnalysisUnavailable is returned when the AI analysis layer is not
// configured (no provider API key). Handlers map it to HTTP 503.
var ErrAnalysisUnavailable = errors.New("analysis unavailable")

// TripAnalyzer is the slice of the analysis layer this service depends on.
type TripAnalyzer interface {
	Analyze(ctx context.Context, trip domain.Trip, transports []domain.Transport, insurance *domain.Insurance, trigger analysis.TriggerReason) analysis.Analysis
	Cached(trip domain.Trip) (analysis.Analysis, bool)
	State(tripID uuid.UUID) analysis.State
	Forget(tripID uuid.UUID)
}

// AnalysisService loads the trip data the analyzer needs and delegates to
// it. The analyzer itself never returns errors; the only errors here are
// trip loading and the layer being disabled.
type AnalysisService struct {
	trips      repo.TripRepo
	insurance  repo.InsuranceRepo
	transports repo.TransportRepo
	analyzer   TripAnalyzer
}

// NewAnalysisService wires the service. analyzer may be nil when the AI
// layer is disabled; operations then return ErrAnalysisUnavailable.
func NewAnalysisService(trips repo.TripRepo, insurance repo.InsuranceRepo, transports repo.TransportRepo, analyzer TripAnalyzer) *AnalysisService {
	return &AnalysisService{trips: trips, insurance: insurance, transports: transports, analyzer: analyzer}
}

// Analyze runs (or serves from cache) the AI analysis for the trip.
func (s *AnalysisService) Analyze(ctx context.Context, tripID uuid.UUID, trigger analysis.TriggerReason) (analysis.Analysis, error) {
	if s.analyzer == nil {
		return analysis.Analysis{}, fmt.Errorf("service.AnalysisService.Analyze: %w", ErrAnalysisUnavailable)
	}
	trip, transports, insurance, err := s.load(ctx, tripID)
	if err != nil {
		return analysis.Analysis{}, fmt.Errorf("service.AnalysisService.Analyze: %w", err)
	}
	return s.analyzer.Analyze(ctx, trip, transports, insurance, trigger), nil
}

// Cached returns the trip's cached analysis, if it is still valid for the
// trip's current state. Returns domain.ErrNotFound when there is none.
func (s *AnalysisService) Cached(ctx context.Context, tripID uuid.UUID) (analysis.Analysis, error) {
	if s.analyzer == nil {
		return analysis.Analysis{}, fmt.Errorf("service.AnalysisService.Cached: %w", ErrAnalysisUnavailable)
	}
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return analysis.Analysis{}, fmt.Errorf("service.AnalysisService.Cached: %w", err)
	}
	out, ok := s.analyzer.Cached(trip)
	if !ok {
		return analysis.Analysis{}, fmt.Errorf("service.AnalysisService.Cached: no valid analysis: %w", domain.ErrNotFound)
	}
	return out, nil
}

// Forget evicts everything the analysis layer holds for a trip. Called when
// the trip is deleted; a no-op when the layer is disabled.
func (s *AnalysisService) Forget(tripID uuid.UUID) {
	if s.analyzer == nil {
		return
	}
	s.analyzer.Forget(tripID)
}

func (s *AnalysisService) load(ctx context.Context, tripID uuid.UUID) (domain.Trip, []domain.Transport, *domain.Insurance, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, nil, nil, err
	}
	transports, err := s.transports.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, nil, nil, err
	}
	var insurance *domain.Insurance
	ins, err := s.insurance.GetByTripID(ctx, tripID)
	switch {
	case err == nil:
		insurance = &ins
	case errors.Is(err, domain.ErrNotFound):
	default:
		return domain.Trip{}, nil, nil, err
	}
	return trip, transports, insurance, nil
}
