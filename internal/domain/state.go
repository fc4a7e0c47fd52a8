package domain

import "slices"

// State is everything a profile owns. It is persisted as one record.
type State struct {
	Products []Product `json:"products"`
	Cart     []string  `json:"cart"`
	Saved    []string  `json:"saved"`
	Wishlist []string  `json:"wishlist"`
}

// Clone returns a deep copy so a mutation can be prepared without touching s.
func (s State) Clone() State {
	out := State{
		Products: make([]Product, len(s.Products)),
		Cart:     slices.Clone(s.Cart),
		Saved:    slices.Clone(s.Saved),
		Wishlist: slices.Clone(s.Wishlist),
	}
	for i, p := range s.Products {
		p.Images = slices.Clone(p.Images)
		out.Products[i] = p
	}
	if out.Cart == nil {
		out.Cart = []string{}
	}
	if out.Saved == nil {
		out.Saved = []string{}
	}
	if out.Wishlist == nil {
		out.Wishlist = []string{}
	}
	return out
}

// Normalize restores the set invariants on data read from storage:
// no duplicate ids per list, and cart and saved are disjoint (cart wins).
func (s *State) Normalize() {
	if s.Products == nil {
		s.Products = []Product{}
	}
	s.Cart = dedupe(s.Cart)
	s.Wishlist = dedupe(s.Wishlist)
	saved := dedupe(s.Saved)
	s.Saved = saved[:0]
	for _, id := range saved {
		if !slices.Contains(s.Cart, id) {
			s.Saved = append(s.Saved, id)
		}
	}
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s State) InCart(id string) bool     { return slices.Contains(s.Cart, id) }
func (s State) InSaved(id string) bool    { return slices.Contains(s.Saved, id) }
func (s State) InWishlist(id string) bool { return slices.Contains(s.Wishlist, id) }

// Product looks a product up by id.
func (s State) Product(id string) (Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Resolve maps ids to products in order. Ids that no longer resolve are skipped.
func (s State) Resolve(ids []string) []Product {
	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.Product(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// Total sums the prices of the given products.
func Total(ps []Product) int {
	n := 0
	for _, p := range ps {
		if p.Price > 0 {
			n += p.Price
		}
	}
	return n
}

// without returns ids minus id, preserving order.
func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

// AddToCart appends id to the cart, moving it out of saved if it was there.
// It reports false if the id was already in the cart.
func (s *State) AddToCart(id string) bool {
	if s.InCart(id) {
		return false
	}
	s.Saved = without(s.Saved, id)
	s.Cart = append(s.Cart, id)
	return true
}

func (s *State) RemoveFromCart(id string) {
	s.Cart = without(s.Cart, id)
}

// ToggleWishlist reports whether id is in the wishlist afterwards.
func (s *State) ToggleWishlist(id string) bool {
	if s.InWishlist(id) {
		s.Wishlist = without(s.Wishlist, id)
		return false
	}
	s.Wishlist = append(s.Wishlist, id)
	return true
}

// MoveToSaved reports false when id was not in the cart.
func (s *State) MoveToSaved(id string) bool {
	if !s.InCart(id) {
		return false
	}
	s.Cart = without(s.Cart, id)
	if !s.InSaved(id) {
		s.Saved = append(s.Saved, id)
	}
	return true
}

// MoveSavedToCart reports false when id was not saved.
func (s *State) MoveSavedToCart(id string) bool {
	if !s.InSaved(id) {
		return false
	}
	s.Saved = without(s.Saved, id)
	if !s.InCart(id) {
		s.Cart = append(s.Cart, id)
	}
	return true
}

// Prepend puts a new listing in front of the catalog.
func (s *State) Prepend(p Product) {
	s.Products = append([]Product{p}, s.Products...)
}
