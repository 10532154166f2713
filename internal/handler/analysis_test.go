package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mviana/trip-prep/backend/internal/analysis"
	"github.com/mviana/trip-prep/backend/internal/domain"
	"github.com/mviana/trip-prep/backend/internal/service"
)

func TestAnalyzeTrip(t *testing.T) {
	tripID := uuid.New()
	analyses := &mockAnalysisService{
		AnalyzeFunc: func(_ context.Context, id uuid.UUID, trigger analysis.TriggerReason) (analysis.Analysis, error) {
			require.Equal(t, tripID, id)
			assert.Equal(t, analysis.TriggerManual, trigger)
			return analysis.Analysis{
				TripID: id,
				Insights: []analysis.Insight{
					{Title: "Alta temporada em Paris", Severity: "info"},
				},
			}, nil
		},
	}
	req := httptest.NewRequest(http.MethodPost, "/trips/"+tripID.String()+"/analysis", nil)

	rec := serve(t, nil, nil, analyses, nil, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result analysis.Analysis
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Len(t, result.Insights, 1)
}

func TestAnalyzeTrip_TriggerParam(t *testing.T) {
	tests := []struct {
		query string
		want  analysis.TriggerReason
	}{
		{"", analysis.TriggerManual},
		{"?trigger=trip_changed", analysis.TriggerTripChanged},
		{"?trigger=periodic", analysis.TriggerPeriodic},
		{"?trigger=garbage", analysis.TriggerManual},
	}
	for _, tt := range tests {
		t.Run("query "+tt.query, func(t *testing.T) {
			analyses := &mockAnalysisService{
				AnalyzeFunc: func(_ context.Context, id uuid.UUID, trigger analysis.TriggerReason) (analysis.Analysis, error) {
					assert.Equal(t, tt.want, trigger)
					return analysis.Analysis{TripID: id}, nil
				},
			}
			req := httptest.NewRequest(http.MethodPost, "/trips/"+uuid.NewString()+"/analysis"+tt.query, nil)

			rec := serve(t, nil, nil, analyses, nil, req)
			require.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestAnalyzeTrip_Unavailable(t *testing.T) {
	analyses := &mockAnalysisService{
		AnalyzeFunc: func(context.Context, uuid.UUID, analysis.TriggerReason) (analysis.Analysis, error) {
			return analysis.Analysis{}, service.ErrAnalysisUnavailable
		},
	}
	req := httptest.NewRequest(http.MethodPost, "/trips/"+uuid.NewString()+"/analysis", nil)

	rec := serve(t, nil, nil, analyses, nil, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "analysis_unavailable", decodeError(t, rec).Error.Code)
}

func TestGetAnalysis_CachedHit(t *testing.T) {
	analyses := &mockAnalysisService{
		CachedFunc: func(_ context.Context, id uuid.UUID) (analysis.Analysis, error) {
			return analysis.Analysis{TripID: id, FromCache: true}, nil
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/trips/"+uuid.NewString()+"/analysis", nil)

	rec := serve(t, nil, nil, analyses, nil, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"from_cache":true`)
}

func TestGetAnalysis_NoValidEntryIs404(t *testing.T) {
	analyses := &mockAnalysisService{
		CachedFunc: func(context.Context, uuid.UUID) (analysis.Analysis, error) {
			return analysis.Analysis{}, fmt.Errorf("service.AnalysisService.Cached: no valid analysis: %w", domain.ErrNotFound)
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/trips/"+uuid.NewString()+"/analysis", nil)

	rec := serve(t, nil, nil, analyses, nil, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
