package handlers

import (
	"github.com/gofiber/fiber/v2"

	"revivedgoods/internal/domain"
	applog "revivedgoods/internal/log"
	"revivedgoods/internal/services"
	"revivedgoods/internal/validate"
)

type ListingHandler struct{}

func (h *ListingHandler) form(c *fiber.Ctx, t domain.ListingType) error {
	st := marketOf(c).Snapshot()
	return render(c, "listing_form", fiber.Map{
		"Type":       t,
		"Donate":     t == domain.Donate,
		"Conditions": conditionOptions(domain.Filters{Conditions: []domain.Condition{domain.Good}}),
		"Categories": services.Categories(st.Products),
	})
}

func (h *ListingHandler) SellForm(c *fiber.Ctx) error   { return h.form(c, domain.Sell) }
func (h *ListingHandler) DonateForm(c *fiber.Ctx) error { return h.form(c, domain.Donate) }

// Create never rejects the form: missing or invalid fields get defaults.
func (h *ListingHandler) Create(c *fiber.Ctx) error {
	in := validate.Listing(domain.ListingInput{
		Title:       c.FormValue("title"),
		Category:    c.FormValue("category"),
		Condition:   c.FormValue("condition"),
		Price:       c.FormValue("price"),
		Description: c.FormValue("description"),
		Type:        c.FormValue("type"),
	})
	p, err := marketOf(c).CreateListing(c.UserContext(), in)
	if err != nil {
		applog.Error(c, "listing.create.fail", err, nil)
		return fiber.NewError(fiber.StatusInternalServerError, "could not publish listing")
	}
	applog.Audit(c, "listing.create", map[string]any{"product": p.ID, "type": string(p.Type), "price": p.Price})
	notice := "Listing published"
	if p.Type == domain.Donate {
		notice = "Donation listed"
	}
	return c.Redirect(withNotice("/", notice))
}
