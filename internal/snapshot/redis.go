package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/nikolayk812/figurestore/internal/port"
)

const keyPrefix = "figurestore:cart:"

type redisSnapshots struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis stores snapshots in Redis. A zero ttl keeps them forever.
func NewRedis(client *redis.Client, ttl time.Duration) (port.SnapshotRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if ttl < 0 {
		return nil, fmt.Errorf("ttl is negative")
	}

	return &redisSnapshots{
		client: client,
		ttl:    ttl,
	}, nil
}

func (r *redisSnapshots) GetSnapshot(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, fmt.Errorf("key is empty")
	}

	payload, err := r.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("client.Get: %w", err)
	}

	return payload, true, nil
}

func (r *redisSnapshots) SaveSnapshot(ctx context.Context, key string, payload []byte) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if err := r.client.Set(ctx, redisKey(key), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func redisKey(key string) string {
	return keyPrefix + key
}
