// internal/domain/cart/redis_slot.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cartTTL = 24 * time.Hour

// RedisSlot stores one cart snapshot as a Redis string with a sliding TTL
type RedisSlot struct {
	client *redis.Client
	key    string
}

// NewCustomerSlot returns the slot for an authenticated customer's cart
func NewCustomerSlot(client *redis.Client, customerID string) *RedisSlot {
	return &RedisSlot{
		client: client,
		key:    fmt.Sprintf("cart:customer:%s", customerID),
	}
}

// NewSessionSlot returns the slot for a guest session's cart
func NewSessionSlot(client *redis.Client, sessionID string) *RedisSlot {
	return &RedisSlot{
		client: client,
		key:    fmt.Sprintf("cart:session:%s", sessionID),
	}
}

// Get reads the snapshot, returning ErrNoSnapshot when the key is absent
func (s *RedisSlot) Get(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSnapshot
	}
	if err != nil {
		return "", fmt.Errorf("failed to read cart snapshot: %w", err)
	}
	return val, nil
}

// Set writes the snapshot with a refreshed expiration
func (s *RedisSlot) Set(ctx context.Context, value string) error {
	return s.client.Set(ctx, s.key, value, cartTTL).Err()
}

// Remove deletes the snapshot
func (s *RedisSlot) Remove(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
