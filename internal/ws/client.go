package ws

import (
	"time"

	"github.com/gofiber/contrib/websocket"

	applog "revivedgoods/internal/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10 // must be less than pongWait
	maxMessageSize = 512
	sendBuffer     = 16
)

// Client is one browser tab.
type Client struct {
	Profile string
	Conn    *websocket.Conn
	Send    chan []byte
}

func NewClient(profile string, conn *websocket.Conn) *Client {
	return &Client{Profile: profile, Conn: conn, Send: make(chan []byte, sendBuffer)}
}

// ReadPump discards what the tab sends and returns when the connection goes
// away. Tabs only listen.
func (c *Client) ReadPump(h *Hub) {
	defer func() {
		h.Unregister(c)
		_ = c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				applog.Warn(nil, "ws.read.fail", err, map[string]any{"profile": c.Profile})
			}
			return
		}
	}
}

// WritePump forwards Send to the connection and keeps it alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
