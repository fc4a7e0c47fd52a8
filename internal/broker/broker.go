// Package broker carries storage-change notifications between server instances.
// A Change says "this slot was rewritten"; it never carries the state itself.
package broker

import (
	"context"
	"encoding/json"
	"time"
)

type Change struct {
	Profile string    `json:"profile"`
	Key     string    `json:"key"`
	Origin  string    `json:"origin"` // instance id of the writer
	At      time.Time `json:"at"`
}

// Publisher announces a slot write.
type Publisher interface {
	Publish(ctx context.Context, c Change) error
}

// Subscriber delivers changes to fn until ctx is done.
type Subscriber interface {
	Subscribe(ctx context.Context, fn func(Change)) error
}

// Broker is both ends.
type Broker interface {
	Publisher
	Subscriber
	Close() error
}

func encode(c Change) ([]byte, error) { return json.Marshal(c) }

func decode(b []byte) (Change, error) {
	var c Change
	err := json.Unmarshal(b, &c)
	return c, err
}
