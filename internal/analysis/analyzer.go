package analysis

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/mviana/trip-prep/backend/internal/domain"
)

// Analyzer orchestrates the AI analysis lifecycle per trip:
// signature computation, cache lookup, coalesced provider calls,
// validation, and degraded fallbacks. Analyze never returns an error —
// provider failures become an Analysis with Failed set, or the previous
// cache entry when one exists.
type Analyzer struct {
	provider Provider
	cache    *Cache
	clock    Clock
	log      *slog.Logger
	timeout  time.Duration

	// group coalesces concurrent requests for the same trip+signature into
	// one in-flight provider call.
	group singleflight.Group

	mu sync.RWMutex
	// states tracks the per-trip lifecycle for observability.
	states map[uuid.UUID]State
	// latest records the most recent signature requested per trip so a
	// response from a superseded call can be detected and kept out of the
	// cache.
	latest map[uuid.UUID]Signature
}

// NewAnalyzer constructs an analyzer. timeout bounds each provider call;
// logger may not be nil.
func NewAnalyzer(provider Provider, cache *Cache, clock Clock, logger *slog.Logger, timeout time.Duration) *Analyzer {
	return &Analyzer{
		provider: provider,
		cache:    cache,
		clock:    clock,
		log:      logger,
		timeout:  timeout,
		states:   make(map[uuid.UUID]State),
		latest:   make(map[uuid.UUID]Signature),
	}
}

// State returns the trip's current analysis state.
func (a *Analyzer) State(tripID uuid.UUID) State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if s, ok := a.states[tripID]; ok {
		return s
	}
	return StateIdle
}

func (a *Analyzer) setState(tripID uuid.UUID, s State) {
	a.mu.Lock()
	a.states[tripID] = s
	a.mu.Unlock()
}

// Forget drops everything the analyzer holds for the trip: its cache entry
// and the state/signature bookkeeping. Call it when the trip is deleted so
// the per-trip maps do not grow for the life of the process.
func (a *Analyzer) Forget(tripID uuid.UUID) {
	a.cache.Invalidate(tripID)
	a.mu.Lock()
	delete(a.states, tripID)
	delete(a.latest, tripID)
	a.mu.Unlock()
}

// Cached returns the trip's cached analysis when one exists and still
// matches the trip's current signature within the freshness window.
func (a *Analyzer) Cached(trip domain.Trip) (Analysis, bool) {
	entry, ok := a.cache.Get(trip.ID, ComputeSignature(trip))
	if !ok {
		return Analysis{}, false
	}
	out := entry.Analysis
	out.FromCache = true
	return out, true
}

// Analyze returns the validated analysis for the trip. A fresh cache entry
// with a matching signature short-circuits without calling the provider.
// Concurrent calls for the same trip+signature share one provider call.
func (a *Analyzer) Analyze(ctx context.Context, trip domain.Trip, transports []domain.Transport, insurance *domain.Insurance, trigger TriggerReason) Analysis {
	sig := ComputeSignature(trip)

	a.mu.Lock()
	a.latest[trip.ID] = sig
	a.mu.Unlock()

	if entry, ok := a.cache.Get(trip.ID, sig); ok {
		a.setState(trip.ID, StateCached)
		out := entry.Analysis
		out.FromCache = true
		return out
	}

	key := trip.ID.String() + ":" + sig.String()
	v, _, _ := a.group.Do(key, func() (any, error) {
		return a.run(ctx, trip, transports, insurance, sig, trigger), nil
	})
	return v.(Analysis)
}

// run performs one provider call and commits the validated result to the
// cache, unless the trip changed while the call was in flight — a stale
// result is returned to its caller but never cached.
func (a *Analyzer) run(ctx context.Context, trip domain.Trip, transports []domain.Transport, insurance *domain.Insurance, sig Signature, trigger TriggerReason) Analysis {
	a.setState(trip.ID, StateAnalyzing)

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := a.provider.Analyze(callCtx, NewTripContext(trip, transports, insurance))
	if err != nil {
		a.log.Warn("trip analysis failed",
			"trip_id", trip.ID,
			"signature", sig.String(),
			"error", err,
		)
		a.setState(trip.ID, StateFailed)

		if entry, ok := a.cache.Last(trip.ID); ok {
			out := entry.Analysis
			out.FromCache = true
			return out
		}
		return Analysis{
			TripID:      trip.ID,
			Signature:   sig,
			Trigger:     trigger,
			GeneratedAt: a.clock.Now(),
			Failed:      true,
			Error:       err.Error(),
		}
	}

	insights, tasks, dropped := validate(raw, trip)
	result := Analysis{
		TripID:         trip.ID,
		Signature:      sig,
		Insights:       insights,
		SuggestedTasks: tasks,
		FilteredCount:  dropped,
		Trigger:        trigger,
		GeneratedAt:    a.clock.Now(),
	}

	a.mu.RLock()
	current := a.latest[trip.ID]
	a.mu.RUnlock()
	if current != sig {
		// The trip changed while the provider call was in flight. The
		// result is stale: hand it back to whoever waited on it, but do
		// not let it overwrite the cache for the newer trip state.
		a.log.Info("discarding stale trip analysis",
			"trip_id", trip.ID,
			"stale_signature", sig.String(),
			"current_signature", current.String(),
		)
		return result
	}

	a.cache.Put(trip.ID, Entry{Analysis: result, Signature: sig, Trigger: trigger})
	a.setState(trip.ID, StateCached)

	a.log.Info("trip analysis completed",
		"trip_id", trip.ID,
		"signature", sig.String(),
		"insights", len(insights),
		"suggested_tasks", len(tasks),
		"filtered", dropped,
	)
	return result
}
