package scheduler

import (
	"context"
	"sync"
	"time"

	applog "revivedgoods/internal/log"
	"revivedgoods/internal/services"
)

// DefaultSessionIdle is how long a profile may go unused before its market
// is dropped from memory.
const DefaultSessionIdle = 30 * time.Minute

// Sweeper evicts idle sessions so visitors who never come back do not stay
// in memory or in the flush set.
type Sweeper struct {
	sessions *services.Sessions
	interval time.Duration
	idle     time.Duration
	stopCh   chan struct{}
	once     sync.Once
}

func NewSweeper(sessions *services.Sessions, interval, idle time.Duration) *Sweeper {
	if idle <= 0 {
		idle = DefaultSessionIdle
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		sessions: sessions,
		interval: interval,
		idle:     idle,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep.
func (s *Sweeper) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func (s *Sweeper) Stop() {
	s.once.Do(func() { close(s.stopCh) })
}

// Sweep evicts every session idle for longer than the threshold and
// returns how many went.
func (s *Sweeper) Sweep() int {
	gone := s.sessions.Evict(s.idle)
	if len(gone) == 0 {
		applog.Debug(nil, "session.sweep", map[string]any{"live": s.sessions.Len()})
		return 0
	}
	applog.Info(nil, "session.evict", map[string]any{
		"evicted": len(gone),
		"live":    s.sessions.Len(),
		"idle":    s.idle.String(),
	})
	return len(gone)
}
