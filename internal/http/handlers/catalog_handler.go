package handlers

import (
	"github.com/gofiber/fiber/v2"

	"revivedgoods/internal/domain"
	"revivedgoods/internal/log"
	"revivedgoods/internal/services"
	"revivedgoods/internal/validate"
)

type CatalogHandler struct{}

// Card is one product tile with the caller's relation to it.
type Card struct {
	domain.Product
	InCart bool
	Wished bool
}

func cards(st domain.State, ps []domain.Product) []Card {
	out := make([]Card, len(ps))
	for i, p := range ps {
		out[i] = Card{Product: p, InCart: st.InCart(p.ID), Wished: st.InWishlist(p.ID)}
	}
	return out
}

// parseFilters reads the catalog query string. Invalid fields fall back to
// their defaults and are returned by name.
func parseFilters(c *fiber.Ctx) (domain.Filters, []string) {
	f := services.DefaultFilters()
	var bad []string

	if q, ok := validate.Q(c.Query("q")); ok {
		f.Query = q
	} else {
		bad = append(bad, "q")
	}
	if cat, ok := validate.Category(c.Query("category")); ok {
		f.Category = cat
	} else {
		bad = append(bad, "category")
	}

	var raw []string
	for _, v := range c.Context().QueryArgs().PeekMulti("cond") {
		raw = append(raw, string(v))
	}
	conds, ok := validate.Conditions(raw)
	f.Conditions = conds
	if !ok {
		bad = append(bad, "cond")
	}

	if n, set, ok := validate.Price(c.Query("min")); !ok {
		bad = append(bad, "min")
	} else if set {
		f.MinPrice = n
	}
	if n, set, ok := validate.Price(c.Query("max")); !ok {
		bad = append(bad, "max")
	} else if set {
		f.MaxPrice = &n
	}

	sort, ok := validate.Sort(c.Query("sort"))
	f.Sort = sort
	if !ok {
		bad = append(bad, "sort")
	}
	return f, bad
}

func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	f, bad := parseFilters(c)
	data := fiber.Map{}
	if len(bad) > 0 {
		log.Security(c, "validation.fail", map[string]any{"fields": bad})
		data["Err"] = "Some filters were invalid and have been reset"
		c.Status(fiber.StatusBadRequest)
	}

	st := marketOf(c).Snapshot()
	view := services.View(st.Products, f)
	lo, hi := services.PriceBounds(st.Products)

	maxVal := ""
	if f.Bounded() {
		maxVal = itoa(*f.MaxPrice)
	}
	minVal := ""
	if f.MinPrice > 0 {
		minVal = itoa(f.MinPrice)
	}

	data["Products"] = cards(st, view)
	data["Count"] = len(view)
	data["Total"] = len(st.Products)
	data["Active"] = services.ActiveFilters(f)
	data["Categories"] = services.Categories(st.Products)
	data["Conditions"] = conditionOptions(f)
	data["Filters"] = f
	data["MinVal"] = minVal
	data["MaxVal"] = maxVal
	data["PriceLo"] = lo
	data["PriceHi"] = hi
	data["Sorts"] = []domain.SortKey{domain.SortNewest, domain.SortPriceAsc, domain.SortPriceDesc}
	return render(c, "home", data)
}

// ConditionOption is one checkbox of the condition filter.
type ConditionOption struct {
	Value   domain.Condition
	Label   string
	Checked bool
}

func conditionOptions(f domain.Filters) []ConditionOption {
	out := make([]ConditionOption, len(domain.Conditions))
	for i, c := range domain.Conditions {
		out[i] = ConditionOption{Value: c, Label: c.Label(), Checked: f.HasCondition(c)}
	}
	return out
}
