package analysis

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/mviana/trip-prep/backend/internal/domain"
)

// Signature fingerprints the trip fields that matter for re-analysis:
// destinations, dates, and traveler count. Cosmetic edits (trip name,
// notes) do not change the signature, so they never invalidate the cache
// or trigger a new provider call.
type Signature uint64

// ComputeSignature hashes the analysis-relevant trip fields. Destination
// codes are sorted so reordering destinations does not count as a change.
func ComputeSignature(trip domain.Trip) Signature {
	codes := make([]string, 0, len(trip.Destinations))
	for _, d := range trip.Destinations {
		codes = append(codes, d.CountryCode+"/"+strings.ToLower(strings.TrimSpace(d.Name)))
	}
	sort.Strings(codes)

	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%d|%s",
		trip.StartDate.UTC().Format("2006-01-02"),
		trip.EndDate.UTC().Format("2006-01-02"),
		len(trip.Travelers),
		strings.Join(codes, ","),
	)
	return Signature(h.Sum64())
}

// String renders the signature as fixed-width hex for log lines and
// single-flight keys.
func (s Signature) String() string {
	return fmt.Sprintf("%016x", uint64(s))
}
