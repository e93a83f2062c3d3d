package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"castdeck/internal/core/domain"
	"castdeck/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// RedisStateRepository stores the whole durable composition blob as one
// JSON value under a fixed namespaced key, one key per profile.
type RedisStateRepository struct {
	client *redis.Client
	key    string
}

func NewRedisStateRepository(client *redis.Client, profile string) ports.StateRepository {
	if profile == "" {
		profile = "default"
	}
	return &RedisStateRepository{
		client: client,
		key:    "castdeck:state:" + profile,
	}
}

func (r *RedisStateRepository) Save(ctx context.Context, state *domain.PersistedState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set state in Redis: %w", err)
	}
	return nil
}

// Load returns (nil, nil) when nothing has been persisted yet.
func (r *RedisStateRepository) Load(ctx context.Context) (*domain.PersistedState, error) {
	data, err := r.client.Get(ctx, r.key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get state from Redis: %w", err)
	}

	var state domain.PersistedState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return &state, nil
}
