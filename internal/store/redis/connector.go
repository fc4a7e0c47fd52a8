package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	applog "revivedgoods/internal/log"
)

// ConnectOptions defines the client and its connect retry behavior.
type ConnectOptions struct {
	Addr           string
	Password       string
	DB             int
	ConnectTimeout time.Duration // total time allowed for attempts
	RetryInterval  time.Duration // first wait, doubled per attempt
	MaxWait        time.Duration // cap on the wait between attempts
	PingTimeout    time.Duration
}

func (o *ConnectOptions) defaults() {
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = 30 * time.Second
	}
	if o.RetryInterval <= 0 {
		o.RetryInterval = 500 * time.Millisecond
	}
	if o.MaxWait <= 0 {
		o.MaxWait = 5 * time.Second
	}
	if o.PingTimeout <= 0 {
		o.PingTimeout = 2 * time.Second
	}
}

// Connect creates a client and pings it with exponential backoff until
// ConnectTimeout runs out.
func Connect(ctx context.Context, opts ConnectOptions) (*redis.Client, error) {
	opts.defaults()
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	wait := opts.RetryInterval
	for attempt := 1; ; attempt++ {
		pingCtx, pingCancel := context.WithTimeout(ctx, opts.PingTimeout)
		err := client.Ping(pingCtx).Err()
		pingCancel()
		if err == nil {
			applog.Info(nil, "redis.connected", map[string]any{"addr": opts.Addr, "attempts": attempt})
			return client, nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			_ = client.Close()
			return nil, fmt.Errorf("redis unavailable at %s after %d attempts: %w", opts.Addr, attempt, err)
		case <-timer.C:
			applog.Warn(nil, "redis.connect.retry", err, map[string]any{"addr": opts.Addr, "attempt": attempt, "next_retry_in": wait.String()})
			wait *= 2
			if wait > opts.MaxWait {
				wait = opts.MaxWait
			}
		}
	}
}
