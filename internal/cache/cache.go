// Package cache memoizes provider responses for a limited time.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/guttosm/b3dash/internal/domain/models"
)

// DefaultTTL matches how long provider responses are considered fresh.
const DefaultTTL = time.Hour

// Key identifies one provider response.
type Key struct {
	Provider string // e.g. "bcb-sgs", "yahoo"
	Key      string // series code, currency or ticker
	Start    time.Time
	End      time.Time
}

// String renders the key; it is also the singleflight group key.
func (k Key) String() string {
	return fmt.Sprintf("%s|%s|%s|%s", k.Provider, k.Key,
		k.Start.Format(models.DateLayout), k.End.Format(models.DateLayout))
}

// NewKey builds a Key for a provider call over w.
func NewKey(provider, key string, w models.Window) Key {
	return Key{Provider: provider, Key: key, Start: models.DateOnly(w.Start), End: models.DateOnly(w.End)}
}

// Entry is a cached result together with the moment it was fetched.
type Entry struct {
	Value     any
	FetchedAt time.Time
}

// Expired reports whether the entry is older than ttl at now.
func (e Entry) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.FetchedAt) >= ttl
}

// FetchFunc loads a value on a cache miss.
type FetchFunc func(ctx context.Context) (any, error)

// Store is a concurrency-safe TTL cache of provider results.
//
// Successful results are stored, empty ones included. Errors are never stored,
// so the next call retries the provider.
type Store struct {
	mu      sync.RWMutex
	entries map[Key]Entry
	ttl     time.Duration
	now     func() time.Time
	group   singleflight.Group
}

// Option customizes a Store.
type Option func(*Store)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store whose entries live for ttl. A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration, opts ...Option) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		entries: make(map[Key]Entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// TTL returns the configured time to live.
func (s *Store) TTL() time.Duration { return s.ttl }

// Get returns the cached entry for k if it exists and has not expired.
func (s *Store) Get(k Key) (Entry, bool) {
	s.mu.RLock()
	e, ok := s.entries[k]
	s.mu.RUnlock()
	if !ok || e.Expired(s.now(), s.ttl) {
		return Entry{}, false
	}
	return e, true
}

// Set stores v under k, stamped with the current time.
func (s *Store) Set(k Key, v any) {
	s.mu.Lock()
	s.entries[k] = Entry{Value: v, FetchedAt: s.now()}
	s.mu.Unlock()
}

// GetOrFetch returns the fresh cached value for k, or calls fetch and caches its result.
//
// Concurrent callers asking for the same key share a single fetch. hit reports
// whether the value came from the cache.
func (s *Store) GetOrFetch(ctx context.Context, k Key, fetch FetchFunc) (v any, hit bool, err error) {
	if e, ok := s.Get(k); ok {
		return e.Value, true, nil
	}

	v, err, _ = s.group.Do(k.String(), func() (any, error) {
		if e, ok := s.Get(k); ok {
			return e.Value, nil
		}
		val, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(k, val)
		return val, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v, false, nil
}

// Purge drops every expired entry and returns how many were removed.
func (s *Store) Purge() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k, e := range s.entries {
		if e.Expired(now, s.ttl) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
