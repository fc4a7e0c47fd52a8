package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Routes mounts every page, form and API endpoint on app.
func Routes(app *fiber.App, d *Deps) {
	session := AttachMarket(d.Sessions)

	// Pages
	app.Get("/", session, d.CatalogHandler.Home)
	app.Get("/product", func(c *fiber.Ctx) error {
		return notFound(c, "This item is no longer available")
	})
	app.Get("/product/:id", session, d.ProductHandler.Detail)

	// Cart & saved for later
	app.Get("/cart", session, d.CartHandler.View)
	app.Post("/cart", session, d.CartHandler.Add)
	app.Post("/cart/remove", session, d.CartHandler.Remove)
	app.Post("/cart/save", session, d.CartHandler.SaveForLater)
	app.Post("/saved/move", session, d.CartHandler.MoveToCart)

	// Wishlist
	app.Get("/wishlist", session, d.WishlistHandler.List)
	app.Post("/wishlist/toggle", session, d.WishlistHandler.Toggle)

	// Listings
	app.Get("/sell", session, d.ListingHandler.SellForm)
	app.Get("/donate", session, d.ListingHandler.DonateForm)
	app.Post("/listings", session, d.ListingHandler.Create)

	// API
	api := app.Group("/api/v1")
	api.Get("/state", session, d.APIHandler.State)
	api.Get("/catalog", session, d.APIHandler.Catalog)

	// Tabs
	app.Get("/ws", d.SocketHandler.Upgrade, d.SocketHandler.Handler())

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
}
