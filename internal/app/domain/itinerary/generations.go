package itinerary

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// GenerationTracker hands out monotonically increasing request generations
// per plan key so that a slow enrichment can tell it has been superseded.
// Keys that stay idle for longer than the TTL are forgotten.
type GenerationTracker struct {
	mu    sync.Mutex
	store *cache.Cache
}

func NewGenerationTracker(ttl time.Duration) *GenerationTracker {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &GenerationTracker{store: cache.New(ttl, 2*ttl)}
}

// Begin registers a new request for key and returns its generation.
func (t *GenerationTracker) Begin(key string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	var next uint64 = 1
	if v, ok := t.store.Get(key); ok {
		next = v.(uint64) + 1
	}
	t.store.Set(key, next, cache.DefaultExpiration)
	return next
}

// IsCurrent reports whether gen is still the latest generation for key.
// A result tagged with a stale generation must be discarded.
func (t *GenerationTracker) IsCurrent(key string, gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.store.Get(key)
	if !ok {
		// Expired: nothing newer was started within the TTL.
		return true
	}
	return v.(uint64) == gen
}

// Latest returns the most recent generation for key, or 0.
func (t *GenerationTracker) Latest(key string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if v, ok := t.store.Get(key); ok {
		return v.(uint64)
	}
	return 0
}
