package broker

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	applog "revivedgoods/internal/log"
)

// RedisChannel is the pub/sub channel changes travel on.
const RedisChannel = "revivedgoods:changes"

// Redis uses PUBLISH/SUBSCRIBE. Delivery is at-most-once, which is all a
// change notification needs.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Publish(ctx context.Context, c Change) error {
	payload, err := encode(c)
	if err != nil {
		return fmt.Errorf("failed to marshal change: %w", err)
	}
	if err := r.client.Publish(ctx, RedisChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change: %w", err)
	}
	return nil
}

func (r *Redis) Subscribe(ctx context.Context, fn func(Change)) error {
	sub := r.client.Subscribe(ctx, RedisChannel)
	defer sub.Close()

	// wait for the subscription to be confirmed
	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			c, err := decode([]byte(msg.Payload))
			if err != nil {
				applog.Warn(nil, "broker.redis.decode.fail", err, nil)
				continue
			}
			fn(c)
		}
	}
}

// Close is a no-op; the client is owned by whoever connected it.
func (r *Redis) Close() error { return nil }
