package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"medtrust/pkg/platform/sentinel"
)

const trustKeyPrefix = "trust:"

// RedisStore keeps one hash per identity with score and last_update fields,
// so every gateway instance sees the same score.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, identity string) (int, error) {
	raw, err := s.client.HGet(ctx, trustKeyPrefix+identity, "score").Result()
	if errors.Is(err, redis.Nil) {
		return 0, sentinel.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("redis get trust score: %w: %w", sentinel.ErrUnavailable, err)
	}
	score, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("decode trust score %q: %w", raw, err)
	}
	return score, nil
}

func (s *RedisStore) Set(ctx context.Context, identity string, score int, at time.Time) error {
	err := s.client.HSet(ctx, trustKeyPrefix+identity,
		"score", score,
		"last_update", at.UTC().Format(time.RFC3339Nano),
	).Err()
	if err != nil {
		return fmt.Errorf("redis set trust score: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

// LastUpdate returns when the identity's score was last written.
func (s *RedisStore) LastUpdate(ctx context.Context, identity string) (time.Time, error) {
	raw, err := s.client.HGet(ctx, trustKeyPrefix+identity, "last_update").Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, sentinel.ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("redis get last update: %w", err)
	}
	return time.Parse(time.RFC3339Nano, raw)
}
