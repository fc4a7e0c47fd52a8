package ws_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"revivedgoods/internal/ws"
)

func client(profile string, buf int) *ws.Client {
	return &ws.Client{Profile: profile, Send: make(chan []byte, buf)}
}

func TestHub_NotifyReachesOnlyThatProfile(t *testing.T) {
	h := ws.NewHub()
	a1, a2, b := client("a", 1), client("a", 1), client("b", 1)
	h.Register(a1)
	h.Register(a2)
	h.Register(b)

	require.Equal(t, 2, h.Notify("a"))
	require.Len(t, b.Send, 0)

	var msg ws.Message
	require.NoError(t, json.Unmarshal(<-a1.Send, &msg))
	require.Equal(t, ws.TypeStateChanged, msg.Type)
	require.Equal(t, "a", msg.Profile)
	require.Len(t, a2.Send, 1)
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	h := ws.NewHub()
	slow := client("a", 1)
	h.Register(slow)

	require.Equal(t, 1, h.Notify("a"))
	require.Equal(t, 0, h.Notify("a"))
	require.Zero(t, h.Count("a"))

	<-slow.Send
	_, open := <-slow.Send
	require.False(t, open)
}

func TestHub_UnregisterTwice(t *testing.T) {
	h := ws.NewHub()
	c := client("a", 1)
	h.Register(c)
	h.Unregister(c)
	h.Unregister(c)
	require.Zero(t, h.Count("a"))
	require.Zero(t, h.Notify("a"))
}

func TestHub_Close(t *testing.T) {
	h := ws.NewHub()
	c := client("a", 1)
	h.Register(c)
	h.Close()
	_, open := <-c.Send
	require.False(t, open)
}
