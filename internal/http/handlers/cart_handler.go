package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"revivedgoods/internal/domain"
	applog "revivedgoods/internal/log"
	"revivedgoods/internal/services"
	"revivedgoods/internal/validate"
)

type CartHandler struct{}

func productID(c *fiber.Ctx) (string, bool) {
	id, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
	}
	return id, ok
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	err := marketOf(c).AddToCart(c.UserContext(), id)
	if errors.Is(err, domain.ErrAlreadyInCart) {
		applog.Info(c, "cart.add.duplicate", map[string]any{"product": id})
		return c.Redirect(withNotice(back(c, "/"), "Item already in cart"))
	}
	if err != nil {
		applog.Error(c, "cart.add.fail", err, map[string]any{"product": id})
		return fiber.NewError(fiber.StatusInternalServerError, "could not add item")
	}
	applog.Audit(c, "cart.add", map[string]any{"product": id})
	return c.Redirect(withNotice(back(c, "/"), "Added to cart"))
}

// cartOp runs a cart or saved-list operation that only needs the product id.
func (h *CartHandler) cartOp(c *fiber.Ctx, action string, op func(m *services.Market, ctx context.Context, id string) error) error {
	id, ok := productID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	if err := op(marketOf(c), c.UserContext(), id); err != nil {
		applog.Error(c, action+".fail", err, map[string]any{"product": id})
		return fiber.NewError(fiber.StatusInternalServerError, "could not update cart")
	}
	applog.Audit(c, action, map[string]any{"product": id})
	return c.Redirect(back(c, "/cart"))
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	return h.cartOp(c, "cart.remove", (*services.Market).RemoveFromCart)
}

func (h *CartHandler) SaveForLater(c *fiber.Ctx) error {
	return h.cartOp(c, "cart.save", (*services.Market).MoveToSaved)
}

func (h *CartHandler) MoveToCart(c *fiber.Ctx) error {
	return h.cartOp(c, "saved.move", (*services.Market).MoveSavedToCart)
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	st := marketOf(c).Snapshot()
	items := st.Resolve(st.Cart)
	return render(c, "cart", fiber.Map{
		"Items": items,
		"Saved": st.Resolve(st.Saved),
		"Total": domain.Total(items),
	})
}
