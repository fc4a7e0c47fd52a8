package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "revivedgoods/internal/log"
)

type WishlistHandler struct{}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	st := marketOf(c).Snapshot()
	return render(c, "wishlist", fiber.Map{"Items": cards(st, st.Resolve(st.Wishlist))})
}

// Toggle adds or removes the product; the wishlist page uses it for remove.
func (h *WishlistHandler) Toggle(c *fiber.Ctx) error {
	pid, ok := productID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	in, err := marketOf(c).ToggleWishlist(c.UserContext(), pid)
	if err != nil {
		applog.Error(c, "wishlist.toggle.fail", err, map[string]any{"product": pid})
		return fiber.NewError(fiber.StatusInternalServerError, "could not update wishlist")
	}
	notice := "Removed from wishlist"
	if in {
		notice = "Added to wishlist"
	}
	applog.Audit(c, "wishlist.toggle", map[string]any{"product": pid, "saved": in})
	return c.Redirect(withNotice(back(c, "/wishlist"), notice))
}
