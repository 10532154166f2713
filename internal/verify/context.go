// Package verify implements the task verification engine: a deterministic,
// rule-based system that inspects a trip and derives the preparation tasks
// it requires. The package is pure — it never touches the database, the
// network, or the wall clock; callers inject all inputs including "now".
package verify

import (
	"fmt"
	"time"

	"github.com/mviana/trip-prep/backend/internal/domain"
)

// Related bundles the records attached to a trip that rules consult.
// Every field is optional; a missing insurance record is data ("there is no
// insurance"), not an error.
type Related struct {
	Insurance  *domain.Insurance
	Transports []domain.Transport
}

// EnrichedDestination is a trip destination with derived attributes resolved
// once at context-build time so rules never re-derive them.
type EnrichedDestination struct {
	Name        string
	CountryName string
	CountryCode string
	// Start/End bound the stay at this destination. Nil when the trip does
	// not pin down per-destination dates; rules fall back to the trip range.
	Start *time.Time
	End   *time.Time

	Schengen     bool
	HighAltitude bool
}

// TravelerInfo is the rule-facing view of a traveler.
type TravelerInfo struct {
	Name        string
	Nationality string
	// PassportExpiry is nil when the passport data was never entered.
	// Rules must treat nil as non-compliant, never as "fine".
	PassportExpiry *time.Time
	vaccinations   map[string]bool
}

// Vaccinated reports whether the traveler has a record for the named vaccine.
func (t TravelerInfo) Vaccinated(vaccine string) bool {
	return t.vaccinations[vaccine]
}

// Flags are the boolean facts precomputed by BuildContext so individual
// rules stay cheap and cannot disagree on how a fact is derived.
type Flags struct {
	// International is true when at least one destination is outside the
	// trip's home country.
	International bool
	// VisitingSchengen is true when at least one destination is in the
	// Schengen area.
	VisitingSchengen bool
	// VisitingHighAltitude is true when at least one destination is a known
	// high-altitude city or country.
	VisitingHighAltitude bool
	// VisitingUS is true when at least one destination is in the United States.
	VisitingUS bool
}

// Context is the immutable input to one verification run. It is built once
// per run by BuildContext and never mutated afterwards, so rules can never
// observe partial state from sibling rules and two runs over the same
// context are guaranteed to see identical inputs.
type Context struct {
	Trip domain.Trip

	// Now is the single time reference for the whole run. Every deadline and
	// day calculation derives from it, which is what makes runs reproducible
	// in tests.
	Now time.Time

	Start time.Time
	End   time.Time

	Destinations []EnrichedDestination
	Travelers    []TravelerInfo

	// CountryCodes is the set of ISO codes across all destinations.
	CountryCodes map[string]bool

	Flags Flags

	// Insurance is nil when the trip has no insurance record.
	Insurance *domain.Insurance

	Transports []domain.Transport
}

// DaysUntilStart returns the whole days between Now and the trip start.
// Negative when the trip has already started.
func (c *Context) DaysUntilStart() int {
	return int(c.Start.Sub(c.Now).Hours() / 24)
}

// DestinationNames returns the display names of all destinations, in trip order.
func (c *Context) DestinationNames() []string {
	names := make([]string, len(c.Destinations))
	for i, d := range c.Destinations {
		names[i] = d.Name
	}
	return names
}

// SchengenRange returns the date range spent inside the Schengen area: the
// earliest start to the latest end across Schengen destinations, falling
// back to the full trip range for destinations without their own dates.
// The second return is false when no destination is in the Schengen area.
func (c *Context) SchengenRange() (start, end time.Time, ok bool) {
	for _, d := range c.Destinations {
		if !d.Schengen {
			continue
		}
		ds, de := c.Start, c.End
		if d.Start != nil {
			ds = *d.Start
		}
		if d.End != nil {
			de = *d.End
		}
		if !ok || ds.Before(start) {
			start = ds
		}
		if !ok || de.After(end) {
			end = de
		}
		ok = true
	}
	return start, end, ok
}

// BuildContext derives the immutable verification context for one run.
// It normalizes every date to UTC, resolves destination attributes, and
// computes the country-code set and flags exactly once.
//
// Missing optional data (no insurance, no transports, no passport expiry)
// never fails the build. Malformed trip dates do: no rule can evaluate
// without a valid date range, so that is surfaced as domain.ErrInvalidTrip
// and aborts the run.
func BuildContext(trip domain.Trip, rel Related, now time.Time) (*Context, error) {
	if trip.StartDate.IsZero() {
		return nil, fmt.Errorf("verify.BuildContext: trip %s has no start date: %w", trip.ID, domain.ErrInvalidTrip)
	}
	if trip.EndDate.IsZero() {
		return nil, fmt.Errorf("verify.BuildContext: trip %s has no end date: %w", trip.ID, domain.ErrInvalidTrip)
	}
	start, end := trip.StartDate.UTC(), trip.EndDate.UTC()
	if end.Before(start) {
		return nil, fmt.Errorf("verify.BuildContext: trip %s ends before it starts: %w", trip.ID, domain.ErrInvalidTrip)
	}

	c := &Context{
		Trip:         trip,
		Now:          now.UTC(),
		Start:        start,
		End:          end,
		CountryCodes: make(map[string]bool, len(trip.Destinations)),
		Insurance:    rel.Insurance,
		Transports:   rel.Transports,
	}

	for _, d := range trip.Destinations {
		ed := EnrichedDestination{
			Name:         d.Name,
			CountryName:  d.CountryName,
			CountryCode:  d.CountryCode,
			Schengen:     SchengenCountries[d.CountryCode],
			HighAltitude: highAltitude(d.Name, d.CountryCode),
		}
		if d.StartDate != nil {
			t := d.StartDate.UTC()
			ed.Start = &t
		}
		if d.EndDate != nil {
			t := d.EndDate.UTC()
			ed.End = &t
		}
		c.Destinations = append(c.Destinations, ed)
		c.CountryCodes[d.CountryCode] = true

		if d.CountryCode != trip.HomeCountry {
			c.Flags.International = true
		}
		if ed.Schengen {
			c.Flags.VisitingSchengen = true
		}
		if ed.HighAltitude {
			c.Flags.VisitingHighAltitude = true
		}
		if d.CountryCode == "US" {
			c.Flags.VisitingUS = true
		}
	}

	for _, t := range trip.Travelers {
		ti := TravelerInfo{
			Name:         t.Name,
			Nationality:  t.Nationality,
			vaccinations: make(map[string]bool, len(t.Vaccinations)),
		}
		if t.PassportExpiry != nil {
			e := t.PassportExpiry.UTC()
			ti.PassportExpiry = &e
		}
		for _, v := range t.Vaccinations {
			ti.vaccinations[v] = true
		}
		c.Travelers = append(c.Travelers, ti)
	}

	return c, nil
}
