package scheduler

import (
	"context"
	"sync"
	"time"

	applog "revivedgoods/internal/log"
	"revivedgoods/internal/services"
)

// Flusher periodically rewrites every live session's state.
type Flusher struct {
	sessions *services.Sessions
	interval time.Duration
	stopCh   chan struct{}
	once     sync.Once
}

func NewFlusher(sessions *services.Sessions, interval time.Duration) *Flusher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Flusher{
		sessions: sessions,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic flush.
func (f *Flusher) Start(ctx context.Context) error {
	ticker := time.NewTicker(f.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				f.FlushAll(ctx)
			case <-f.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func (f *Flusher) Stop() {
	f.once.Do(func() { close(f.stopCh) })
}

// FlushAll writes every live session and returns how many failed.
// Failures are logged and retried on the next tick.
func (f *Flusher) FlushAll(ctx context.Context) int {
	failed := 0
	f.sessions.Each(func(m *services.Market) {
		if err := m.Flush(ctx); err != nil {
			failed++
			applog.Warn(nil, "flush.fail", err, map[string]any{"profile": m.Profile()})
		}
	})
	return failed
}
