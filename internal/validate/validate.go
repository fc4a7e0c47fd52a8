package validate

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"revivedgoods/internal/domain"
)

var (
	reQ        = regexp.MustCompile(`^[\p{L}\p{N} _'.,&/+-]{1,50}$`)
	reID       = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reCategory = regexp.MustCompile(`^[\p{L}\p{N} &_'-]{1,40}$`)
	reProfile  = regexp.MustCompile(`^[a-f0-9-]{36}$`)
)

// Field limits for the listing form. Longer input is cut, never rejected.
const (
	MaxTitle       = 80
	MaxCategory    = 40
	MaxDescription = 1000
)

// Q validates a search query: trims, enforces allowed characters and max length.
// An empty query is valid and means no search.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	s = Truncate(s, 50)
	return s, reQ.MatchString(s)
}

// ID validates a product id.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Profile validates a sid cookie value.
func Profile(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reProfile.MatchString(s)
}

// Category validates a category filter. Empty and "all" both disable it.
func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, domain.AllCategories) {
		return domain.AllCategories, true
	}
	return s, reCategory.MatchString(s)
}

// Conditions keeps the known conditions from a multi-select, in order and
// without repeats. The second result is false if anything was dropped.
func Conditions(raw []string) ([]domain.Condition, bool) {
	ok := true
	var out []domain.Condition
	for _, s := range raw {
		c := domain.Condition(strings.ToUpper(strings.TrimSpace(s)))
		if !c.Valid() {
			ok = false
			continue
		}
		dup := false
		for _, x := range out {
			dup = dup || x == c
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out, ok
}

// Sort validates a sort key. Unknown keys fall back to newest.
func Sort(s string) (domain.SortKey, bool) {
	k := domain.SortKey(strings.ToLower(strings.TrimSpace(s)))
	if k == domain.SortNone {
		return domain.SortNewest, true
	}
	if !k.Valid() {
		return domain.SortNewest, false
	}
	return k, true
}

// Price reads an optional price bound. set is false for an empty field;
// ok is false for anything that is not a non-negative number.
func Price(s string) (n int, set bool, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false, false
	}
	if f >= domain.SentinelMaxPrice {
		return domain.SentinelMaxPrice, true, true
	}
	return int(f), true, true
}

// Listing trims and length-limits the free-text listing fields. Defaults for
// empty or invalid fields are applied when the product is built.
func Listing(in domain.ListingInput) domain.ListingInput {
	in.Title = Truncate(strings.TrimSpace(in.Title), MaxTitle)
	in.Category = Truncate(strings.TrimSpace(in.Category), MaxCategory)
	in.Description = Truncate(strings.TrimSpace(in.Description), MaxDescription)
	in.Condition = strings.TrimSpace(in.Condition)
	in.Type = strings.TrimSpace(in.Type)
	in.Price = strings.TrimSpace(in.Price)
	return in
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
