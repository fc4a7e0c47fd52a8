package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"revivedgoods/internal/broker"
	"revivedgoods/internal/domain"
	applog "revivedgoods/internal/log"
)

// SlotStore is a durable key-value slot partitioned by profile.
// Get returns domain.ErrSlotEmpty when nothing is stored.
type SlotStore interface {
	Get(ctx context.Context, profile, key string) ([]byte, error)
	Put(ctx context.Context, profile, key string, value []byte) error
}

// StateStore reads and writes a profile's whole state under domain.StateKey.
// It is the only place state crosses the process boundary.
type StateStore struct {
	slots  SlotStore
	pub    broker.Publisher
	origin string
}

// NewStateStore wires a slot store to a change publisher. pub may be nil.
func NewStateStore(slots SlotStore, pub broker.Publisher, origin string) *StateStore {
	return &StateStore{slots: slots, pub: pub, origin: origin}
}

func (s *StateStore) Origin() string { return s.origin }

// Load returns the stored state. ok is false when the slot is empty or its
// contents cannot be decoded; the caller substitutes the default state.
func (s *StateStore) Load(ctx context.Context, profile string) (st domain.State, ok bool, err error) {
	raw, err := s.slots.Get(ctx, profile, domain.StateKey)
	if errors.Is(err, domain.ErrSlotEmpty) {
		return domain.State{}, false, nil
	}
	if err != nil {
		return domain.State{}, false, fmt.Errorf("failed to load state: %w", err)
	}
	st, err = Decode(raw)
	if err != nil {
		applog.Warn(nil, "state.load.corrupt", err, map[string]any{"profile": profile, "bytes": len(raw)})
		return domain.State{}, false, nil
	}
	return st, true, nil
}

// Save writes the whole state in one Put and announces the change.
// A failed announcement is logged; the write has already happened.
func (s *StateStore) Save(ctx context.Context, profile string, st domain.State) error {
	if err := s.put(ctx, profile, st); err != nil {
		return err
	}
	if s.pub == nil {
		return nil
	}
	c := broker.Change{Profile: profile, Key: domain.StateKey, Origin: s.origin, At: time.Now().UTC()}
	if err := s.pub.Publish(ctx, c); err != nil {
		applog.Warn(nil, "state.publish.fail", err, map[string]any{"profile": profile})
	}
	return nil
}

// Flush writes the state without announcing it. Rewriting an unchanged
// record is not a change other instances need to hear about.
func (s *StateStore) Flush(ctx context.Context, profile string, st domain.State) error {
	return s.put(ctx, profile, st)
}

func (s *StateStore) put(ctx context.Context, profile string, st domain.State) error {
	raw, err := Encode(st)
	if err != nil {
		return err
	}
	if err := s.slots.Put(ctx, profile, domain.StateKey, raw); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Encode serializes state in the persisted layout.
func Encode(st domain.State) ([]byte, error) {
	st = st.Clone()
	raw, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}
	return raw, nil
}

// Decode parses a persisted record. Anything that is not a JSON object
// matching the layout is ErrStateCorrupt.
func Decode(raw []byte) (domain.State, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return domain.State{}, domain.ErrStateCorrupt
	}
	var st domain.State
	if err := json.Unmarshal(trimmed, &st); err != nil {
		return domain.State{}, fmt.Errorf("%w: %v", domain.ErrStateCorrupt, err)
	}
	st.Normalize()
	return st, nil
}
