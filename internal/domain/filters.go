package domain

type SortKey string

const (
	SortNone      SortKey = ""
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNewest    SortKey = "newest"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortNone, SortPriceAsc, SortPriceDesc, SortNewest:
		return true
	}
	return false
}

// AllCategories disables the category filter.
const AllCategories = "all"

// SentinelMaxPrice and anything above it means "no upper bound".
const SentinelMaxPrice = 99999999

// Filters select and order the catalog view. The zero value shows everything
// in insertion order.
type Filters struct {
	Query      string
	Category   string
	Conditions []Condition
	MinPrice   int
	MaxPrice   *int
	Sort       SortKey
}

// Bounded reports whether an upper price bound is in effect.
func (f Filters) Bounded() bool {
	return f.MaxPrice != nil && *f.MaxPrice < SentinelMaxPrice
}

func (f Filters) HasCondition(c Condition) bool {
	for _, x := range f.Conditions {
		if x == c {
			return true
		}
	}
	return false
}
