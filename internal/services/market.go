package services

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"revivedgoods/internal/domain"
	"revivedgoods/internal/seed"
)

// Container holds one profile's in-memory state. Reads get a copy.
type Container struct {
	mu    sync.Mutex
	state domain.State
}

func NewContainer(st domain.State) *Container {
	return &Container{state: st.Clone()}
}

func (c *Container) Snapshot() domain.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// MarketOptions supplies the clock and generators new listings use.
type MarketOptions struct {
	Now   func() time.Time
	NewID func() string
	Image func() string
}

func (o *MarketOptions) defaults() {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = seed.NewID
	}
	if o.Image == nil {
		o.Image = PlaceholderImage
	}
}

// PlaceholderImage picks a random stock picture for a new listing.
func PlaceholderImage() string {
	return fmt.Sprintf("https://picsum.photos/seed/%d/800/600", rand.Intn(1000))
}

// Market runs the user-facing operations against one profile's state.
// Every operation prepares the next state on a copy, persists it, and only
// then commits it, so a failed save leaves the container as it was.
type Market struct {
	profile  string
	box      *Container
	store    *StateStore
	fallback func() domain.State
	opts     MarketOptions

	// pristine is true while the state is the unsaved default; guarded by box.mu
	pristine bool
	lastUsed atomic.Int64
}

func NewMarket(profile string, st domain.State, store *StateStore, fallback func() domain.State, opts MarketOptions) *Market {
	opts.defaults()
	return &Market{profile: profile, box: NewContainer(st), store: store, fallback: fallback, opts: opts}
}

func (m *Market) Profile() string { return m.profile }

func (m *Market) Snapshot() domain.State { return m.box.Snapshot() }

func (m *Market) touch(t time.Time) { m.lastUsed.Store(t.UnixNano()) }

func (m *Market) idleSince(cutoff time.Time) bool {
	return m.lastUsed.Load() <= cutoff.UnixNano()
}

func (m *Market) mutate(ctx context.Context, fn func(*domain.State) error) error {
	m.box.mu.Lock()
	defer m.box.mu.Unlock()

	next := m.box.state.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := m.store.Save(ctx, m.profile, next); err != nil {
		return err
	}
	m.box.state = next
	m.pristine = false
	return nil
}

// AddToCart appends id to the cart. An id already there is reported with
// domain.ErrAlreadyInCart and nothing changes.
func (m *Market) AddToCart(ctx context.Context, id string) error {
	return m.mutate(ctx, func(s *domain.State) error {
		if !s.AddToCart(id) {
			return domain.ErrAlreadyInCart
		}
		return nil
	})
}

// ToggleWishlist reports whether id is in the wishlist afterwards.
func (m *Market) ToggleWishlist(ctx context.Context, id string) (bool, error) {
	var in bool
	err := m.mutate(ctx, func(s *domain.State) error {
		in = s.ToggleWishlist(id)
		return nil
	})
	return in, err
}

// CreateListing builds a product from the form and puts it first in the catalog.
func (m *Market) CreateListing(ctx context.Context, in domain.ListingInput) (domain.Product, error) {
	p := domain.NewListing(in, m.opts.Now(), m.opts.NewID(), m.opts.Image())
	err := m.mutate(ctx, func(s *domain.State) error {
		s.Prepend(p)
		return nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (m *Market) RemoveFromCart(ctx context.Context, id string) error {
	return m.mutate(ctx, func(s *domain.State) error {
		s.RemoveFromCart(id)
		return nil
	})
}

// MoveToSaved does nothing for an id that is not in the cart.
func (m *Market) MoveToSaved(ctx context.Context, id string) error {
	return m.mutate(ctx, func(s *domain.State) error {
		s.MoveToSaved(id)
		return nil
	})
}

// MoveSavedToCart does nothing for an id that is not saved.
func (m *Market) MoveSavedToCart(ctx context.Context, id string) error {
	return m.mutate(ctx, func(s *domain.State) error {
		s.MoveSavedToCart(id)
		return nil
	})
}

// Reload replaces the in-memory state with whatever is stored now. An empty
// or corrupt slot yields the default state. The lock is held across the read
// so a mutation cannot commit between the load and the swap.
func (m *Market) Reload(ctx context.Context) error {
	m.box.mu.Lock()
	defer m.box.mu.Unlock()

	st, ok, err := m.store.Load(ctx, m.profile)
	if err != nil {
		return err
	}
	if !ok {
		st = m.fallback()
	}
	m.box.state = st.Clone()
	m.pristine = !ok
	return nil
}

// Flush rewrites the current state without announcing a change. A profile
// still on the default state it was never saved with is skipped.
func (m *Market) Flush(ctx context.Context) error {
	m.box.mu.Lock()
	defer m.box.mu.Unlock()
	if m.pristine {
		return nil
	}
	return m.store.Flush(ctx, m.profile, m.box.state)
}
