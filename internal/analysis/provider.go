package analysis

import (
	"context"

	"github.com/mviana/trip-prep/backend/internal/domain"
)

// TripContext is the serialized view of a trip sent to the reasoning
// provider. Only data the provider should reason over is included; internal
// IDs and bookkeeping timestamps stay out of the prompt.
type TripContext struct {
	Name         string           `json:"name"`
	HomeCountry  string           `json:"home_country"`
	StartDate    string           `json:"start_date"` // YYYY-MM-DD
	EndDate      string           `json:"end_date"`
	Destinations []tripPlace      `json:"destinations"`
	Travelers    []tripTraveler   `json:"travelers"`
	Transports   []tripTransport  `json:"transports,omitempty"`
	Insurance    *tripInsurance   `json:"insurance,omitempty"`
}

type tripPlace struct {
	Name        string `json:"name"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

type tripTraveler struct {
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
}

type tripTransport struct {
	Kind        string `json:"kind"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	DepartsAt   string `json:"departs_at"`
}

type tripInsurance struct {
	Provider      string `json:"provider"`
	CoverageStart string `json:"coverage_start"`
	CoverageEnd   string `json:"coverage_end"`
}

const dateLayout = "2006-01-02"

// NewTripContext builds the provider-facing view of a trip and its related
// records.
func NewTripContext(trip domain.Trip, transports []domain.Transport, insurance *domain.Insurance) TripContext {
	tc := TripContext{
		Name:        trip.Name,
		HomeCountry: trip.HomeCountry,
		StartDate:   trip.StartDate.UTC().Format(dateLayout),
		EndDate:     trip.EndDate.UTC().Format(dateLayout),
	}
	for _, d := range trip.Destinations {
		p := tripPlace{
			Name:        d.Name,
			Country:     d.CountryName,
			CountryCode: d.CountryCode,
		}
		if d.StartDate != nil {
			p.StartDate = d.StartDate.UTC().Format(dateLayout)
		}
		if d.EndDate != nil {
			p.EndDate = d.EndDate.UTC().Format(dateLayout)
		}
		tc.Destinations = append(tc.Destinations, p)
	}
	for _, t := range trip.Travelers {
		tc.Travelers = append(tc.Travelers, tripTraveler{Name: t.Name, Nationality: t.Nationality})
	}
	for _, tr := range transports {
		tc.Transports = append(tc.Transports, tripTransport{
			Kind:        string(tr.Kind),
			Origin:      tr.Origin,
			Destination: tr.Destination,
			DepartsAt:   tr.DepartsAt.UTC().Format(dateLayout),
		})
	}
	if insurance != nil {
		tc.Insurance = &tripInsurance{
			Provider:      insurance.Provider,
			CoverageStart: insurance.CoverageStart.UTC().Format(dateLayout),
			CoverageEnd:   insurance.CoverageEnd.UTC().Format(dateLayout),
		}
	}
	return tc
}

// Provider is the external reasoning service. Implementations must honor
// ctx cancellation; the analyzer applies the caller-supplied timeout.
type Provider interface {
	Analyze(ctx context.Context, tc TripContext) (RawAnalysis, error)
}
