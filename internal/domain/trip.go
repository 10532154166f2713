// Package domain contains the core data types for the trip preparation
// application. This package has no dependencies beyond uuid and is imported
// by every other internal package (verify, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus tracks where a trip is in its lifecycle.
type TripStatus string

const (
	TripPlanning  TripStatus = "planning"
	TripConfirmed TripStatus = "confirmed"
	TripOngoing   TripStatus = "ongoing"
	TripFinished  TripStatus = "finished"
	TripCancelled TripStatus = "cancelled"
)

// Trip represents a planned journey with one or more destinations.
// A trip is the top-level aggregate; destinations, travelers, transports,
// insurance, and preparation tasks all belong to a trip.
type Trip struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	HomeCountry  string        `json:"home_country"` // ISO 3166-1 alpha-2 code of the departure country
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
	Status       TripStatus    `json:"status"`
	Destinations []Destination `json:"destinations,omitempty"`
	Travelers    []Traveler    `json:"travelers,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Destination is a single place visited during a trip.
// StartDate/EndDate are nil when the traveler has not pinned down which part
// of the trip is spent there; rules then fall back to the trip's full range.
type Destination struct {
	ID          uuid.UUID  `json:"id"`
	TripID      uuid.UUID  `json:"trip_id"`
	Name        string     `json:"name"`         // city or region, e.g. "Paris"
	CountryName string     `json:"country_name"` // e.g. "France"
	CountryCode string     `json:"country_code"` // ISO 3166-1 alpha-2, e.g. "FR"
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Traveler is a person going on a trip.
// PassportExpiry is nil when the passport data was never entered; rules must
// treat that as "unknown", not as "valid".
type Traveler struct {
	ID             uuid.UUID  `json:"id"`
	TripID         uuid.UUID  `json:"trip_id"`
	Name           string     `json:"name"`
	Nationality    string     `json:"nationality"` // ISO 3166-1 alpha-2
	PassportExpiry *time.Time `json:"passport_expiry,omitempty"`
	Vaccinations   []string   `json:"vaccinations,omitempty"` // e.g. "yellow-fever", "hepatitis-a"
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
