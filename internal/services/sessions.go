package services

import (
	"context"
	"sync"
	"time"

	applog "revivedgoods/internal/log"
	"revivedgoods/internal/seed"
)

// Sessions holds the live Market of every profile this instance has served.
type Sessions struct {
	mu      sync.Mutex
	markets map[string]*Market
	store   *StateStore
	catalog *seed.Catalog
	opts    MarketOptions
}

func NewSessions(store *StateStore, catalog *seed.Catalog, opts MarketOptions) *Sessions {
	if catalog == nil {
		catalog = seed.Default()
	}
	return &Sessions{
		markets: make(map[string]*Market),
		store:   store,
		catalog: catalog,
		opts:    opts,
	}
}

func (s *Sessions) Store() *StateStore { return s.store }

func (s *Sessions) now() time.Time {
	if s.opts.Now != nil {
		return s.opts.Now()
	}
	return time.Now()
}

// Get returns the profile's Market, loading it on first use. A profile with
// nothing stored starts from the default catalog, which is not written until
// the first change.
func (s *Sessions) Get(ctx context.Context, profile string) (*Market, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.markets[profile]; ok {
		m.touch(s.now())
		return m, nil
	}

	st, ok, err := s.store.Load(ctx, profile)
	if err != nil {
		return nil, err
	}
	if !ok {
		st = s.catalog.State()
		applog.Debug(nil, "state.default", map[string]any{"profile": profile, "products": len(st.Products)})
	}
	m := NewMarket(profile, st, s.store, s.catalog.State, s.opts)
	m.pristine = !ok
	m.touch(s.now())
	s.markets[profile] = m
	return m, nil
}

// Len is the number of live markets.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.markets)
}

// Evict drops markets unused for at least idle and returns their profiles.
// Nothing is written: a committed state has always been saved already, and
// a later Get loads it back.
func (s *Sessions) Evict(idle time.Duration) []string {
	cutoff := s.now().Add(-idle)
	s.mu.Lock()
	defer s.mu.Unlock()
	var gone []string
	for profile, m := range s.markets {
		if m.idleSince(cutoff) {
			delete(s.markets, profile)
			gone = append(gone, profile)
		}
	}
	return gone
}

// Lookup returns a live Market without loading one.
func (s *Sessions) Lookup(profile string) (*Market, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.markets[profile]
	return m, ok
}

// Each calls fn for every live Market.
func (s *Sessions) Each(fn func(*Market)) {
	s.mu.Lock()
	ms := make([]*Market, 0, len(s.markets))
	for _, m := range s.markets {
		ms = append(ms, m)
	}
	s.mu.Unlock()
	for _, m := range ms {
		fn(m)
	}
}

// Reload refreshes a live profile from storage. Profiles this instance has
// not served are skipped and report false.
func (s *Sessions) Reload(ctx context.Context, profile string) (bool, error) {
	m, ok := s.Lookup(profile)
	if !ok {
		return false, nil
	}
	return true, m.Reload(ctx)
}

