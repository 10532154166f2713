package domain

import (
	"time"

	"github.com/google/uuid"
)

// Insurance is a travel insurance policy attached to a trip.
// A trip has at most one insurance record; its absence is meaningful
// (the insurance rules generate a task) and is never an error.
type Insurance struct {
	ID            uuid.UUID `json:"id"`
	TripID        uuid.UUID `json:"trip_id"`
	Provider      string    `json:"provider"`
	PolicyNumber  string    `json:"policy_number"`
	CoverageStart time.Time `json:"coverage_start"`
	CoverageEnd   time.Time `json:"coverage_end"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Covers reports whether the policy's coverage window fully contains the
// given date range (inclusive on both ends).
func (i Insurance) Covers(start, end time.Time) bool {
	return !i.CoverageStart.After(start) && !i.CoverageEnd.Before(end)
}

// TransportKind is the mode of a transport leg.
type TransportKind string

const (
	TransportFlight TransportKind = "flight"
	TransportTrain  TransportKind = "train"
	TransportBus    TransportKind = "bus"
	TransportCar    TransportKind = "car"
	TransportShip   TransportKind = "ship"
)

// Transport is one booked leg of a trip (a flight, a train ride, ...).
type Transport struct {
	ID          uuid.UUID     `json:"id"`
	TripID      uuid.UUID     `json:"trip_id"`
	Kind        TransportKind `json:"kind"`
	Origin      string        `json:"origin"`
	Destination string        `json:"destination"`
	DepartsAt   time.Time     `json:"departs_at"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
