package scheduler

import (
	"context"
	"sync"
	"time"

	"revivedgoods/internal/broker"
	"revivedgoods/internal/domain"
	applog "revivedgoods/internal/log"
	"revivedgoods/internal/services"
)

// Notifier is told which profile changed. ws.Hub implements it.
type Notifier interface {
	Notify(profile string) int
}

const resubscribeWait = 2 * time.Second

// TabSync keeps this instance's sessions in step with writes made elsewhere.
// A change from another instance replaces the profile's state with what is
// stored (last writer wins). Every change, local ones included, is passed on
// to the profile's open tabs.
type TabSync struct {
	sub      broker.Subscriber
	sessions *services.Sessions
	notifier Notifier
	origin   string

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func NewTabSync(sub broker.Subscriber, sessions *services.Sessions, notifier Notifier) *TabSync {
	return &TabSync{
		sub:      sub,
		sessions: sessions,
		notifier: notifier,
		origin:   sessions.Store().Origin(),
		done:     make(chan struct{}),
	}
}

// Start subscribes in the background. A dropped subscription is retried
// until Stop or ctx is done.
func (ts *TabSync) Start(ctx context.Context) error {
	ctx, ts.cancel = context.WithCancel(ctx)
	go func() {
		defer close(ts.done)
		for {
			err := ts.sub.Subscribe(ctx, func(c broker.Change) { ts.Handle(ctx, c) })
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				applog.Warn(nil, "sync.subscribe.fail", err, nil)
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(resubscribeWait):
			}
		}
	}()
	applog.Info(nil, "sync.started", map[string]any{"origin": ts.origin})
	return nil
}

// Stop ends the subscription and waits for it to return.
func (ts *TabSync) Stop() {
	ts.once.Do(func() {
		if ts.cancel == nil {
			close(ts.done)
			return
		}
		ts.cancel()
		<-ts.done
	})
}

// Handle applies one change.
func (ts *TabSync) Handle(ctx context.Context, c broker.Change) {
	if c.Key != domain.StateKey || c.Profile == "" {
		return
	}
	if c.Origin != ts.origin {
		reloaded, err := ts.sessions.Reload(ctx, c.Profile)
		if err != nil {
			applog.Error(nil, "sync.reload.fail", err, map[string]any{"profile": c.Profile, "origin": c.Origin})
			return
		}
		if reloaded {
			applog.Debug(nil, "sync.reload", map[string]any{"profile": c.Profile, "origin": c.Origin})
		}
	}
	if ts.notifier != nil {
		ts.notifier.Notify(c.Profile)
	}
}
