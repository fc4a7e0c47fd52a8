package services_test

import (
	"context"
	"errors"
	"sync"

	"revivedgoods/internal/broker"
	"revivedgoods/internal/domain"
)

type memSlots struct {
	mu      sync.Mutex
	data    map[string][]byte
	puts    int
	failPut bool
	// onGet runs after Get has read the slot and before it returns
	onGet func()
}

func newMemSlots() *memSlots { return &memSlots{data: make(map[string][]byte)} }

func (m *memSlots) Get(_ context.Context, profile, key string) ([]byte, error) {
	m.mu.Lock()
	v, ok := m.data[profile+"/"+key]
	hook := m.onGet
	m.mu.Unlock()
	if hook != nil {
		hook()
	}
	if !ok {
		return nil, domain.ErrSlotEmpty
	}
	return append([]byte(nil), v...), nil
}

func (m *memSlots) putCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

func (m *memSlots) has(profile string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[profile+"/"+domain.StateKey]
	return ok
}

func (m *memSlots) Put(_ context.Context, profile, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut {
		return errors.New("disk full")
	}
	m.puts++
	m.data[profile+"/"+key] = append([]byte(nil), value...)
	return nil
}

func (m *memSlots) set(profile string, raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[profile+"/"+domain.StateKey] = []byte(raw)
}

type recordingPublisher struct {
	mu      sync.Mutex
	changes []broker.Change
}

func (r *recordingPublisher) Publish(_ context.Context, c broker.Change) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, c)
	return nil
}

func (r *recordingPublisher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.changes)
}
