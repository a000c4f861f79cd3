package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"clientdesk/internal/domain"
)

// DefaultRedisPrefix namespaces clientdesk keys in a shared Redis.
const DefaultRedisPrefix = "_clientdesk_"

// RedisStore persists values as Redis strings under prefix+key.
type RedisStore struct {
	cli     *redis.Client
	prefix  string
	timeout time.Duration
}

// NewRedisStore returns a RedisStore using cli. Each call is bounded by timeout.
func NewRedisStore(cli *redis.Client, prefix string, timeout time.Duration) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RedisStore{cli: cli, prefix: prefix, timeout: timeout}
}

func (s *RedisStore) Get(key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	b, err := s.cli.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *RedisStore) Set(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.cli.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *RedisStore) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.cli.Del(ctx, s.prefix+key).Err()
}

var _ domain.KeyValueStore = (*RedisStore)(nil)
