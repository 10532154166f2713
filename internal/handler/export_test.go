package handler_test

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mviana/trip-prep/backend/internal/domain"
)

func TestExportTrip(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	exports := &mockExportService{
		ExportFunc: func(context.Context, uuid.UUID) ([]domain.ExportRow, error) {
			return []domain.ExportRow{
				{
					TripName:  "Europa 2026",
					TaskTitle: "Contratar seguro viagem",
					Category:  domain.CategoryFinancial,
					Priority:  domain.PriorityHigh,
					Urgency:   domain.UrgencyBlocking,
					Deadline:  &deadline,
				},
			}, nil
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/trips/"+uuid.NewString()+"/export", nil)

	rec := serve(t, nil, nil, nil, exports, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "checklist.csv")

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.ExportHeader(), records[0])
	assert.Equal(t, "Contratar seguro viagem", records[1][1])
	assert.Equal(t, "2026-03-01", records[1][5])
	assert.Equal(t, "no", records[1][6])
}

func TestExportTrip_NoTasksIsHeaderOnly(t *testing.T) {
	exports := &mockExportService{
		ExportFunc: func(context.Context, uuid.UUID) ([]domain.ExportRow, error) {
			return nil, nil
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/trips/"+uuid.NewString()+"/export", nil)

	rec := serve(t, nil, nil, nil, exports, req)

	require.Equal(t, http.StatusOK, rec.Code)
	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.ExportHeader(), records[0])
}

func TestExportTrip_NotFound(t *testing.T) {
	exports := &mockExportService{
		ExportFunc: func(context.Context, uuid.UUID) ([]domain.ExportRow, error) {
			return nil, domain.ErrNotFound
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/trips/"+uuid.NewString()+"/export", nil)

	rec := serve(t, nil, nil, nil, exports, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
