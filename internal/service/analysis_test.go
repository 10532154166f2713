package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mviana/trip-prep/backend/internal/analysis"
	"github.com/mviana/trip-prep/backend/internal/domain"
	"github.com/mviana/trip-prep/backend/internal/service"
)

type mockAnalyzer struct {
	AnalyzeFunc func(ctx context.Context, trip domain.Trip, transports []domain.Transport, insurance *domain.Insurance, trigger analysis.TriggerReason) analysis.Analysis
	CachedFunc  func(trip domain.Trip) (analysis.Analysis, bool)
	StateFunc   func(tripID uuid.UUID) analysis.State
	ForgetFunc  func(tripID uuid.UUID)
}

var _ service.TripAnalyzer = (*mockAnalyzer)(nil)

func (m *mockAnalyzer) Analyze(ctx context.Context, trip domain.Trip, transports []domain.Transport, insurance *domain.Insurance, trigger analysis.TriggerReason) analysis.Analysis {
	return m.AnalyzeFunc(ctx, trip, transports, insurance, trigger)
}
func (m *mockAnalyzer) Cached(trip domain.Trip) (analysis.Analysis, bool) {
	return m.CachedFunc(trip)
}
func (m *mockAnalyzer) State(tripID uuid.UUID) analysis.State {
	return m.StateFunc(tripID)
}
func (m *mockAnalyzer) Forget(tripID uuid.UUID) {
	m.ForgetFunc(tripID)
}

func analysisRepos(trip domain.Trip, insurance *domain.Insurance) (*mockTripRepo, *mockInsuranceRepo, *mockTransportRepo) {
	trips := &mockTripRepo{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			if id != trip.ID {
				return domain.Trip{}, domain.ErrNotFound
			}
			return trip, nil
		},
	}
	ins := &mockInsuranceRepo{
		GetByTripIDFunc: func(context.Context, uuid.UUID) (domain.Insurance, error) {
			if insurance == nil {
				return domain.Insurance{}, domain.ErrNotFound
			}
			return *insurance, nil
		},
	}
	transports := &mockTransportRepo{
		ListByTripIDFunc: func(context.Context, uuid.UUID) ([]domain.Transport, error) {
			return nil, nil
		},
	}
	return trips, ins, transports
}

func TestAnalysisService_Analyze(t *testing.T) {
	trip := internationalTrip(uuid.New())
	trips, ins, transports := analysisRepos(trip, nil)

	analyzer := &mockAnalyzer{
		AnalyzeFunc: func(_ context.Context, got domain.Trip, _ []domain.Transport, insurance *domain.Insurance, trigger analysis.TriggerReason) analysis.Analysis {
			assert.Equal(t, trip.ID, got.ID)
			assert.Nil(t, insurance)
			assert.Equal(t, analysis.TriggerManual, trigger)
			return analysis.Analysis{TripID: got.ID}
		},
	}
	svc := service.NewAnalysisService(trips, ins, transports, analyzer)

	out, err := svc.Analyze(context.Background(), trip.ID, analysis.TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, trip.ID, out.TripID)
}

func TestAnalysisService_Analyze_TripNotFound(t *testing.T) {
	trips, ins, transports := analysisRepos(internationalTrip(uuid.New()), nil)
	svc := service.NewAnalysisService(trips, ins, transports, &mockAnalyzer{})

	_, err := svc.Analyze(context.Background(), uuid.New(), analysis.TriggerManual)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnalysisService_DisabledLayer(t *testing.T) {
	trips, ins, transports := analysisRepos(internationalTrip(uuid.New()), nil)
	svc := service.NewAnalysisService(trips, ins, transports, nil)

	_, err := svc.Analyze(context.Background(), uuid.New(), analysis.TriggerManual)
	assert.ErrorIs(t, err, service.ErrAnalysisUnavailable)

	_, err = svc.Cached(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrAnalysisUnavailable)
}

func TestAnalysisService_Cached(t *testing.T) {
	trip := internationalTrip(uuid.New())
	trips, ins, transports := analysisRepos(trip, nil)

	t.Run("hit", func(t *testing.T) {
		analyzer := &mockAnalyzer{
			CachedFunc: func(domain.Trip) (analysis.Analysis, bool) {
				return analysis.Analysis{TripID: trip.ID, FromCache: true}, true
			},
		}
		svc := service.NewAnalysisService(trips, ins, transports, analyzer)

		out, err := svc.Cached(context.Background(), trip.ID)
		require.NoError(t, err)
		assert.True(t, out.FromCache)
	})

	t.Run("miss maps to not found", func(t *testing.T) {
		analyzer := &mockAnalyzer{
			CachedFunc: func(domain.Trip) (analysis.Analysis, bool) {
				return analysis.Analysis{}, false
			},
		}
		svc := service.NewAnalysisService(trips, ins, transports, analyzer)

		_, err := svc.Cached(context.Background(), trip.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAnalysisService_Forget(t *testing.T) {
	trip := internationalTrip(uuid.New())
	trips, ins, transports := analysisRepos(trip, nil)

	forgotten := uuid.Nil
	analyzer := &mockAnalyzer{ForgetFunc: func(id uuid.UUID) { forgotten = id }}
	svc := service.NewAnalysisService(trips, ins, transports, analyzer)

	svc.Forget(trip.ID)
	assert.Equal(t, trip.ID, forgotten)

	// With the layer disabled it is a no-op, not a panic.
	disabled := service.NewAnalysisService(trips, ins, transports, nil)
	disabled.Forget(trip.ID)
}
