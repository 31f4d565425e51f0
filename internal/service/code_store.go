package service

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// CodeStore holds short-lived verification codes. Keys expire on their own;
// a missing key reads back as the empty string.
type CodeStore interface {
	Set(ctx context.Context, key, code string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
}

type RedisCodeStore struct {
	Client *redis.Client
}

func NewRedisCodeStore(client *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{Client: client}
}

func (s *RedisCodeStore) Set(ctx context.Context, key, code string, ttl time.Duration) error {
	return s.Client.Set(ctx, key, code, ttl).Err()
}

func (s *RedisCodeStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisCodeStore) Del(ctx context.Context, key string) error {
	return s.Client.Del(ctx, key).Err()
}
