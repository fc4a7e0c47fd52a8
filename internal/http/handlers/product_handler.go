package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"revivedgoods/internal/log"
	"revivedgoods/internal/validate"
)

type ProductHandler struct{}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return notFound(c, "This item is no longer available")
	}
	st := marketOf(c).Snapshot()
	p, ok := st.Product(id)
	if !ok {
		return notFound(c, "This item is no longer available")
	}
	return render(c, "product", fiber.Map{
		"P":      p,
		"InCart": st.InCart(id),
		"Saved":  st.InSaved(id),
		"Wished": st.InWishlist(id),
	})
}

func itoa(n int) string { return strconv.Itoa(n) }
