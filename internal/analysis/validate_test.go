package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mviana/trip-prep/backend/internal/domain"
)

func validationTrip() domain.Trip {
	return domain.Trip{
		Name:        "Europa 2026",
		HomeCountry: "BR",
		StartDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC),
		Destinations: []domain.Destination{
			{Name: "Paris", CountryName: "France", CountryCode: "FR"},
		},
		Travelers: []domain.Traveler{
			{Name: "Ana", Nationality: "BR"},
		},
	}
}

func TestValidate_DropsUnknownDestination(t *testing.T) {
	raw := RawAnalysis{
		Insights: []RawInsight{
			{Title: "Greve de transportes", Destination: "Paris"},
			{Title: "Clima em Tóquio", Destination: "Tokyo"}, // not on this trip
		},
	}

	insights, tasks, dropped := validate(raw, validationTrip())

	require.Len(t, insights, 1)
	assert.Equal(t, "Greve de transportes", insights[0].Title)
	assert.Empty(t, tasks)
	assert.Equal(t, 1, dropped)
}

func TestValidate_DestinationMatchesCountryNameAndCode(t *testing.T) {
	raw := RawAnalysis{
		Insights: []RawInsight{
			{Title: "a", Destination: "france"},
			{Title: "b", Destination: "FR"},
			{Title: "c", Destination: ""}, // trip-wide claims are fine
		},
	}

	insights, _, dropped := validate(raw, validationTrip())
	assert.Len(t, insights, 3)
	assert.Zero(t, dropped)
}

func TestValidate_DropsUnknownTraveler(t *testing.T) {
	raw := RawAnalysis{
		SuggestedTasks: []RawSuggestedTask{
			{Title: "Renovar passaporte", Traveler: "Ana"},
			{Title: "Renovar passaporte", Traveler: "Carlos"}, // invented
		},
	}

	_, tasks, dropped := validate(raw, validationTrip())
	assert.Len(t, tasks, 1)
	assert.Equal(t, 1, dropped)
}

func TestValidate_DateBounds(t *testing.T) {
	tests := []struct {
		name string
		date string
		kept bool
	}{
		{"empty date", "", true},
		{"inside trip", "2026-03-20", true},
		{"week before trip", "2026-03-09", true},
		{"far before trip", "2026-01-01", false},
		{"far after trip", "2026-06-01", false},
		{"unparseable", "next Tuesday", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawAnalysis{
				SuggestedTasks: []RawSuggestedTask{{Title: "x", Date: tt.date}},
			}
			_, tasks, dropped := validate(raw, validationTrip())
			if tt.kept {
				assert.Len(t, tasks, 1)
				assert.Zero(t, dropped)
			} else {
				assert.Empty(t, tasks)
				assert.Equal(t, 1, dropped)
			}
		})
	}
}

func TestValidate_DropsUntitledItems(t *testing.T) {
	raw := RawAnalysis{
		Insights:       []RawInsight{{Title: ""}},
		SuggestedTasks: []RawSuggestedTask{{Title: ""}},
	}

	insights, tasks, dropped := validate(raw, validationTrip())
	assert.Empty(t, insights)
	assert.Empty(t, tasks)
	assert.Equal(t, 2, dropped)
}

func TestParseConfidence(t *testing.T) {
	assert.Equal(t, ConfidenceHigh, parseConfidence("High"))
	assert.Equal(t, ConfidenceMedium, parseConfidence(" medium "))
	assert.Equal(t, ConfidenceLow, parseConfidence("low"))
	assert.Equal(t, ConfidenceLow, parseConfidence("very sure"))
	assert.Equal(t, ConfidenceLow, parseConfidence(""))
}
