package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ListingInput carries the raw listing form fields. Nothing here is trusted.
type ListingInput struct {
	Title       string
	Category    string
	Condition   string
	Price       string
	Description string
	Type        string
}

// NewListing builds a product from form input, defaulting anything missing or invalid.
// Donations are always free.
func NewListing(in ListingInput, now time.Time, id string, image string) Product {
	p := Product{
		ID:          id,
		Title:       orDefault(in.Title, "Untitled"),
		Category:    orDefault(in.Category, "Other"),
		Condition:   Condition(strings.ToUpper(strings.TrimSpace(in.Condition))),
		Type:        ListingType(strings.ToUpper(strings.TrimSpace(in.Type))),
		Description: strings.TrimSpace(in.Description),
		Images:      []string{image},
		CreatedAt:   now.UTC(),
	}
	if !p.Condition.Valid() {
		p.Condition = Good
	}
	if !p.Type.Valid() {
		p.Type = Sell
	}
	p.Price = ParsePrice(in.Price)
	if p.Type == Donate {
		p.Price = 0
	}
	return p
}

// ParsePrice reads a whole, non-negative price. Anything else is 0.
func ParsePrice(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || math.IsNaN(f) || f < 0 || f > float64(SentinelMaxPrice) {
			return 0
		}
		return int(f)
	}
	if n < 0 {
		return 0
	}
	return n
}

func orDefault(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}
