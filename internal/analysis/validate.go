package analysis

import (
	"strings"
	"time"

	"github.com/mviana/trip-prep/backend/internal/domain"
)

// The validation pass is the trust boundary between the reasoning provider
// and the rest of the system. Any insight or suggestion that claims a
// destination, traveler, or date the trip does not actually have is a
// hallucination and is dropped individually — the rest of the analysis
// survives.

// tripFacts is the ground truth a response is checked against.
type tripFacts struct {
	destinations map[string]bool // lowercased destination and country names, codes
	travelers    map[string]bool // lowercased traveler names
	start, end   time.Time
}

func newTripFacts(trip domain.Trip) tripFacts {
	f := tripFacts{
		destinations: make(map[string]bool),
		travelers:    make(map[string]bool),
		start:        trip.StartDate.UTC(),
		end:          trip.EndDate.UTC(),
	}
	for _, d := range trip.Destinations {
		f.destinations[normalizeFact(d.Name)] = true
		f.destinations[normalizeFact(d.CountryName)] = true
		f.destinations[normalizeFact(d.CountryCode)] = true
	}
	for _, t := range trip.Travelers {
		f.travelers[normalizeFact(t.Name)] = true
	}
	return f
}

func normalizeFact(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// knownDestination accepts an empty claim (trip-wide) or one matching a
// destination name, country name, or country code.
func (f tripFacts) knownDestination(claim string) bool {
	if strings.TrimSpace(claim) == "" {
		return true
	}
	return f.destinations[normalizeFact(claim)]
}

func (f tripFacts) knownTraveler(claim string) bool {
	if strings.TrimSpace(claim) == "" {
		return true
	}
	return f.travelers[normalizeFact(claim)]
}

// knownDate accepts an empty claim, an unparseable one is rejected, and a
// parsed date must fall inside the trip range extended by a week on each
// side (tasks legitimately reference "the day before departure").
func (f tripFacts) knownDate(claim string) bool {
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return true
	}
	d, err := time.Parse(dateLayout, claim)
	if err != nil {
		return false
	}
	return !d.Before(f.start.AddDate(0, 0, -7)) && !d.After(f.end.AddDate(0, 0, 7))
}

// validate filters the raw provider output against the trip, tagging
// surviving suggestions with a confidence level. It returns the validated
// insights and tasks plus the number of items dropped.
func validate(raw RawAnalysis, trip domain.Trip) ([]Insight, []SuggestedTask, int) {
	facts := newTripFacts(trip)
	dropped := 0

	var insights []Insight
	for _, ri := range raw.Insights {
		if ri.Title == "" || !facts.knownDestination(ri.Destination) {
			dropped++
			continue
		}
		insights = append(insights, Insight{
			Category:    ri.Category,
			Severity:    ri.Severity,
			Title:       ri.Title,
			Description: ri.Description,
		})
	}

	var tasks []SuggestedTask
	for _, rt := range raw.SuggestedTasks {
		if rt.Title == "" ||
			!facts.knownDestination(rt.Destination) ||
			!facts.knownTraveler(rt.Traveler) ||
			!facts.knownDate(rt.Date) {
			dropped++
			continue
		}
		tasks = append(tasks, SuggestedTask{
			Title:       rt.Title,
			Description: rt.Description,
			Category:    rt.Category,
			Destination: rt.Destination,
			Confidence:  parseConfidence(rt.Confidence),
		})
	}

	return insights, tasks, dropped
}

// parseConfidence maps the provider's free-text confidence onto the known
// levels, defaulting to low: an unlabeled suggestion earns no trust.
func parseConfidence(s string) Confidence {
	switch Confidence(normalizeFact(s)) {
	case ConfidenceHigh:
		return ConfidenceHigh
	case ConfidenceMedium:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
