package broker

import (
	"context"
	"sync"
)

// Memory fans changes out to subscribers of the same process.
type Memory struct {
	mu     sync.Mutex
	subs   map[int]chan Change
	next   int
	closed bool
}

func NewMemory() *Memory {
	return &Memory{subs: make(map[int]chan Change)}
}

// Publish never blocks: a subscriber whose buffer is full misses the change.
func (m *Memory) Publish(_ context.Context, c Change) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- c:
		default:
		}
	}
	return nil
}

func (m *Memory) Subscribe(ctx context.Context, fn func(Change)) error {
	ch := make(chan Change, 64)
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	id := m.next
	m.next++
	m.subs[id] = ch
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		if _, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(ch)
		}
		m.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-ch:
			if !ok {
				return nil
			}
			fn(c)
		}
	}
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	for id, ch := range m.subs {
		close(ch)
		delete(m.subs, id)
	}
	return nil
}
