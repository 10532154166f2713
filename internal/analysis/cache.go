package analysis

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time.Now so cache freshness is testable with a fixed
// clock. Production code passes SystemClock.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock backed by the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Entry is one cached analysis with the metadata needed to decide whether
// it can be served again.
type Entry struct {
	Analysis  Analysis
	Signature Signature
	StoredAt  time.Time
	Trigger   TriggerReason
}

// Cache holds validated analyses per trip. It is an explicit, injected
// service (no package-level state): construct one per process and pass it
// to the analyzer. Safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	clock   Clock
	entries map[uuid.UUID]Entry
}

// NewCache returns a cache whose entries stay fresh for ttl.
func NewCache(ttl time.Duration, clock Clock) *Cache {
	return &Cache{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[uuid.UUID]Entry),
	}
}

// Get returns the entry for the trip if it matches the given signature and
// is within the freshness window. A signature mismatch means the trip
// changed in a way that matters; the entry is then invisible to Get even
// if young.
func (c *Cache) Get(tripID uuid.UUID, sig Signature) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[tripID]
	if !ok || e.Signature != sig {
		return Entry{}, false
	}
	if c.clock.Now().Sub(e.StoredAt) > c.ttl {
		return Entry{}, false
	}
	return e, true
}

// Last returns the most recent entry for the trip regardless of signature
// or age. Used as the degraded fallback when the provider fails.
func (c *Cache) Last(tripID uuid.UUID) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[tripID]
	return e, ok
}

// Put stores the entry for the trip, stamping StoredAt from the clock.
func (c *Cache) Put(tripID uuid.UUID, e Entry) {
	e.StoredAt = c.clock.Now()
	c.mu.Lock()
	c.entries[tripID] = e
	c.mu.Unlock()
}

// Invalidate drops the trip's entry, if any.
func (c *Cache) Invalidate(tripID uuid.UUID) {
	c.mu.Lock()
	delete(c.entries, tripID)
	c.mu.Unlock()
}
