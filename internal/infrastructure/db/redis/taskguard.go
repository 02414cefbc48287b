package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TaskGuard provides atomic set-if-absent idempotency keys backed by Redis.
// SET NX is the sole mechanism preventing duplicate job execution across
// parallel task workers; key expiry bounds the dedup window.
type TaskGuard struct {
	client *redis.Client
}

// NewTaskGuard creates a TaskGuard wrapping the given Redis client.
func NewTaskGuard(client *redis.Client) *TaskGuard {
	return &TaskGuard{client: client}
}

// Acquire atomically claims key for ttl. It returns true when the key was
// absent and is now held by this caller, false when another execution
// already holds it.
func (g *TaskGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := g.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("task guard acquire: %w", err)
	}
	return ok, nil
}
