package services

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"revivedgoods/internal/domain"
)

// DefaultFilters is what "clear filters" resets to.
func DefaultFilters() domain.Filters {
	return domain.Filters{Category: domain.AllCategories, Sort: domain.SortNewest}
}

// View derives the visible catalog: search, category, condition set and
// price range are applied in that order, then the chosen sort. The input is
// never modified and ties keep their original order.
func View(products []domain.Product, f domain.Filters) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if q != "" && !strings.Contains(strings.ToLower(p.Title+" "+p.Description+" "+p.Category), q) {
			continue
		}
		if f.Category != "" && f.Category != domain.AllCategories && p.Category != f.Category {
			continue
		}
		if len(f.Conditions) > 0 && !f.HasCondition(p.Condition) {
			continue
		}
		if p.Price < f.MinPrice {
			continue
		}
		if f.Bounded() && p.Price > *f.MaxPrice {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case domain.SortPriceAsc:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return cmp.Compare(a.Price, b.Price) })
	case domain.SortPriceDesc:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return cmp.Compare(b.Price, a.Price) })
	case domain.SortNewest:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return b.Created().Compare(a.Created()) })
	}
	return out
}

// ActiveFilters summarizes the filters in effect, one label per filter.
func ActiveFilters(f domain.Filters) []string {
	var parts []string
	if f.Category != "" && f.Category != domain.AllCategories {
		parts = append(parts, "Category: "+f.Category)
	}
	if len(f.Conditions) > 0 {
		names := make([]string, len(f.Conditions))
		for i, c := range f.Conditions {
			names[i] = string(c)
		}
		parts = append(parts, "Condition: "+strings.Join(names, ", "))
	}
	if f.MinPrice > 0 {
		parts = append(parts, "Min ₹"+strconv.Itoa(f.MinPrice))
	}
	if f.Bounded() {
		parts = append(parts, "Max ₹"+strconv.Itoa(*f.MaxPrice))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		parts = append(parts, fmt.Sprintf("Search: %q", q))
	}
	return parts
}

// PriceBounds returns the lowest and highest price, used to prefill the
// price inputs. An empty catalog yields 0, 0.
func PriceBounds(products []domain.Product) (lo, hi int) {
	for i, p := range products {
		if i == 0 || p.Price < lo {
			lo = p.Price
		}
		if i == 0 || p.Price > hi {
			hi = p.Price
		}
	}
	return lo, hi
}

// Categories lists distinct categories, sorted.
func Categories(products []domain.Product) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	slices.Sort(out)
	return out
}
