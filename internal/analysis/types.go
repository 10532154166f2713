// Package analysis is the AI-assisted contextual layer of the verification
// system. It serializes a trip into a request to an external reasoning
// provider, caches responses keyed by a content signature of the trip, and
// validates everything the provider returns against the trip data before
// exposing it. Its output is best-effort and lower-trust than the
// deterministic rules: failures degrade to cached or empty results, never
// to errors in the caller.
package analysis

import (
	"time"

	"github.com/google/uuid"
)

// Confidence grades how much trust a validated suggestion carries.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// TriggerReason records why an analysis was requested.
type TriggerReason string

const (
	TriggerManual      TriggerReason = "manual"
	TriggerTripChanged TriggerReason = "trip_changed"
	TriggerPeriodic    TriggerReason = "periodic"
)

// State is the per-trip analysis lifecycle: Idle → Analyzing → Cached|Failed.
type State string

const (
	StateIdle      State = "idle"
	StateAnalyzing State = "analyzing"
	StateCached    State = "cached"
	StateFailed    State = "failed"
)

// Insight is a validated observation about the trip (e.g. a seasonal
// warning for a destination).
type Insight struct {
	Category    string `json:"category"`
	Severity    string `json:"severity"` // info, warning, critical
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SuggestedTask is a validated, AI-proposed preparation task. It is never
// merged into the rule-generated task list automatically; the user must
// accept it explicitly.
type SuggestedTask struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Destination string     `json:"destination,omitempty"`
	Confidence  Confidence `json:"confidence"`
}

// Analysis is the validated result exposed to callers.
type Analysis struct {
	TripID         uuid.UUID       `json:"trip_id"`
	Signature      Signature       `json:"signature"`
	Insights       []Insight       `json:"insights"`
	SuggestedTasks []SuggestedTask `json:"suggested_tasks"`
	// FilteredCount is how many provider suggestions the hallucination
	// check dropped.
	FilteredCount int           `json:"filtered_count"`
	Trigger       TriggerReason `json:"trigger"`
	GeneratedAt   time.Time     `json:"generated_at"`
	FromCache     bool          `json:"from_cache"`
	// Failed is set when the provider call failed and no prior cache entry
	// could stand in. Error carries the reason; the caller never sees a
	// Go error from the analyzer.
	Failed bool   `json:"failed,omitempty"`
	Error  string `json:"error,omitempty"`
}

// RawInsight is an insight as returned by the provider, before validation.
type RawInsight struct {
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Destination string `json:"destination,omitempty"`
}

// RawSuggestedTask is a suggested task as returned by the provider, before
// validation. Destination, Traveler, and Date are the claims the
// hallucination check verifies against the trip.
type RawSuggestedTask struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Destination string `json:"destination,omitempty"`
	Traveler    string `json:"traveler,omitempty"`
	Date        string `json:"date,omitempty"` // YYYY-MM-DD
	Confidence  string `json:"confidence,omitempty"`
}

// RawAnalysis is the provider's parsed response before validation.
type RawAnalysis struct {
	Insights       []RawInsight       `json:"insights"`
	SuggestedTasks []RawSuggestedTask `json:"suggested_tasks"`
}
