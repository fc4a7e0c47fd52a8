package handlers

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	applog "revivedgoods/internal/log"
	"revivedgoods/internal/ws"
)

// SocketHandler lets open tabs hear about changes to their profile.
type SocketHandler struct {
	Hub *ws.Hub
}

// Upgrade rejects plain HTTP and records the profile for the connection.
func (h *SocketHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	c.Locals("profile", ensureSID(c))
	return c.Next()
}

func (h *SocketHandler) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		profile, _ := conn.Locals("profile").(string)
		if profile == "" {
			_ = conn.Close()
			return
		}
		client := ws.NewClient(profile, conn)
		h.Hub.Register(client)
		applog.Debug(nil, "ws.connect", map[string]any{"profile": profile, "tabs": h.Hub.Count(profile)})

		go client.WritePump()
		client.ReadPump(h.Hub)
	})
}
