// Package ws keeps the open browser tabs of each profile and tells them when
// the profile's state changed so they can re-render.
package ws

import (
	"encoding/json"
	"sync"
)

// Message is what a tab receives.
type Message struct {
	Type    string `json:"type"`
	Profile string `json:"profile,omitempty"`
}

const TypeStateChanged = "state_changed"

// Hub maps profiles to their connected clients.
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.Profile]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.Profile] = set
	}
	set[c] = struct{}{}
}

// Unregister removes c and closes its Send channel. Calling it twice is safe.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(c)
}

func (h *Hub) drop(c *Client) {
	set, ok := h.clients[c.Profile]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.Send)
	if len(set) == 0 {
		delete(h.clients, c.Profile)
	}
}

// Notify tells every tab of profile to re-render and returns how many were
// reached. A client whose buffer is full is disconnected.
func (h *Hub) Notify(profile string) int {
	payload, _ := json.Marshal(Message{Type: TypeStateChanged, Profile: profile})

	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for c := range h.clients[profile] {
		select {
		case c.Send <- payload:
			n++
		default:
			h.drop(c)
		}
	}
	return n
}

// Count returns the number of open tabs for profile.
func (h *Hub) Count(profile string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[profile])
}

// Close disconnects everyone.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, set := range h.clients {
		for c := range set {
			h.drop(c)
		}
	}
}
