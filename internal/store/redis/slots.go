package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"revivedgoods/internal/domain"
)

// KeyPrefixSlot prefixes every slot key.
const KeyPrefixSlot = "revivedgoods:slot:"

// SlotKey returns the Redis key for a profile's slot.
func SlotKey(profile, key string) string {
	return KeyPrefixSlot + profile + ":" + key
}

// Slots keeps one value per (profile, key) as a plain Redis string with no TTL.
type Slots struct {
	client *redis.Client
}

func NewSlots(client *redis.Client) *Slots {
	return &Slots{client: client}
}

func (s *Slots) Get(ctx context.Context, profile, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, SlotKey(profile, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSlotEmpty
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	return data, nil
}

func (s *Slots) Put(ctx context.Context, profile, key string, value []byte) error {
	if err := s.client.Set(ctx, SlotKey(profile, key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to save slot: %w", err)
	}
	return nil
}

