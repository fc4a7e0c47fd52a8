package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"revivedgoods/internal/domain"
)

func TestState_CartSavedStayDisjoint(t *testing.T) {
	s := domain.State{}.Clone()

	require.True(t, s.AddToCart("x"))
	require.True(t, s.MoveToSaved("x"))
	require.Empty(t, s.Cart)
	require.Equal(t, []string{"x"}, s.Saved)

	// adding a saved item to the cart moves it
	require.True(t, s.AddToCart("x"))
	require.Equal(t, []string{"x"}, s.Cart)
	require.Empty(t, s.Saved)

	require.False(t, s.AddToCart("x"))
	require.Equal(t, []string{"x"}, s.Cart)
}

func TestState_MovePreconditions(t *testing.T) {
	s := domain.State{}.Clone()
	require.False(t, s.MoveToSaved("nope"))
	require.False(t, s.MoveSavedToCart("nope"))
	require.Empty(t, s.Cart)
	require.Empty(t, s.Saved)
}

func TestState_RemoveFromCartIdempotent(t *testing.T) {
	s := domain.State{Cart: []string{"a", "b"}}.Clone()
	s.RemoveFromCart("a")
	once := append([]string(nil), s.Cart...)
	s.RemoveFromCart("a")
	require.Equal(t, once, s.Cart)
	require.Equal(t, []string{"b"}, s.Cart)
}

func TestState_ToggleWishlist(t *testing.T) {
	s := domain.State{}.Clone()
	require.True(t, s.ToggleWishlist("a"))
	require.True(t, s.ToggleWishlist("b"))
	require.False(t, s.ToggleWishlist("a"))
	require.Equal(t, []string{"b"}, s.Wishlist)
}

func TestState_Normalize(t *testing.T) {
	s := domain.State{
		Cart:     []string{"a", "a", "b"},
		Saved:    []string{"b", "c", "c"},
		Wishlist: []string{"z", "z"},
	}
	s.Normalize()
	require.Equal(t, []string{"a", "b"}, s.Cart)
	require.Equal(t, []string{"c"}, s.Saved)
	require.Equal(t, []string{"z"}, s.Wishlist)
	require.NotNil(t, s.Products)
}

func TestState_ResolveSkipsMissing(t *testing.T) {
	s := domain.State{Products: []domain.Product{{ID: "a", Title: "A", Price: 5}, {ID: "b", Title: "B", Price: 7}}}
	got := s.Resolve([]string{"b", "gone", "a"})
	require.Len(t, got, 2)
	require.Equal(t, "b", got[0].ID)
	require.Equal(t, "a", got[1].ID)
	require.Equal(t, 12, domain.Total(got))
}

func TestState_CloneIsDeep(t *testing.T) {
	s := domain.State{
		Products: []domain.Product{{ID: "a", Images: []string{"one"}}},
		Cart:     []string{"a"},
	}
	c := s.Clone()
	c.Products[0].Images[0] = "two"
	c.Cart[0] = "b"
	require.Equal(t, "one", s.Products[0].Images[0])
	require.Equal(t, "a", s.Cart[0])
}

func TestNewListing_Defaults(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	p := domain.NewListing(domain.ListingInput{Price: "abc", Condition: "MINT", Type: "SWAP"}, now, "id1", "img")
	require.Equal(t, "Untitled", p.Title)
	require.Equal(t, "Other", p.Category)
	require.Equal(t, domain.Good, p.Condition)
	require.Equal(t, domain.Sell, p.Type)
	require.Equal(t, 0, p.Price)
	require.Equal(t, []string{"img"}, p.Images)
	require.Equal(t, now, p.CreatedAt)
}

func TestNewListing_DonateIsFree(t *testing.T) {
	p := domain.NewListing(domain.ListingInput{Title: "Lamp", Type: "DONATE", Price: "500"}, time.Now(), "id2", "img")
	require.Equal(t, 0, p.Price)
	require.Equal(t, domain.Donate, p.Type)
	require.Equal(t, "Lamp", p.Title)
}

func TestParsePrice(t *testing.T) {
	cases := map[string]int{
		"": 0, "12": 12, " 40 ": 40, "-3": 0, "2.5": 2, "x": 0,
		"NaN": 0, "nan": 0, "Inf": 0, "-Inf": 0, "+Infinity": 0, "1e300": 0,
	}
	for in, want := range cases {
		require.Equal(t, want, domain.ParsePrice(in), "input %q", in)
	}
}

func TestNewListing_NonNumericPriceIsZero(t *testing.T) {
	p := domain.NewListing(domain.ListingInput{Title: "Lamp", Price: "NaN", Type: "SELL"}, time.Now(), "id_x", "")
	require.Equal(t, 0, p.Price)
	require.Equal(t, domain.Sell, p.Type)
}

func TestProduct_Labels(t *testing.T) {
	p := domain.Product{Price: 2500, Condition: domain.LikeNew, Type: domain.Sell}
	require.Equal(t, "LIKE NEW", p.Badge())
	require.Equal(t, "₹2500", p.PriceLabel())
	require.Equal(t, domain.PlaceholderImage, p.Image())

	free := domain.Product{Type: domain.Donate, Condition: domain.Good}
	require.Equal(t, "Free — Donate", free.Badge())
	require.Equal(t, "Free", free.PriceLabel())
	require.Equal(t, int64(0), free.Created().Unix())
}
