package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"coinpulse/internal/model"
)

const redisKeyPrefix = "coinpulse:sentiment:"

// RedisStore keeps summaries in Redis so multiple instances share one cache.
// Expiry is delegated to Redis key TTLs.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, coin string) (*model.SentimentSummary, error) {
	val, err := s.client.Get(ctx, redisKeyPrefix+coin).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var summary model.SentimentSummary
	if err := json.Unmarshal([]byte(val), &summary); err != nil {
		return nil, fmt.Errorf("redis decode: %w", err)
	}

	return &summary, nil
}

func (s *RedisStore) Set(ctx context.Context, coin string, summary model.SentimentSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("redis encode: %w", err)
	}

	if err := s.client.Set(ctx, redisKeyPrefix+coin, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
