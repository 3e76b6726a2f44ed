package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPersistence keeps cart snapshots in Redis under a per-session key.
// Snapshots expire after the base TTL plus a small jitter so idle sessions
// age out without all keys expiring at once.
type RedisPersistence struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisPersistence(client *redis.Client, ttl time.Duration) *RedisPersistence {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisPersistence{client: client, baseTTL: ttl}
}

func (r *RedisPersistence) Load(ctx context.Context, sessionID string) ([]LineItem, error) {
	data, err := r.client.Get(ctx, persistKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return items, nil
}

func (r *RedisPersistence) Save(ctx context.Context, sessionID string, items []LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	jitter := time.Duration(rand.Intn(5)) * time.Minute
	if err := r.client.Set(ctx, persistKey(sessionID), data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisPersistence) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, persistKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func persistKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
