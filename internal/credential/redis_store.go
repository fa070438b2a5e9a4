package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps credentials in Redis so several dashboard processes on one
// host share a session. There is no coordination between them on refresh.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore builds a RedisStore whose keys start with prefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(name string) string { return s.prefix + name }

func (s *RedisStore) Get(ctx context.Context) (Credentials, error) {
	values, err := s.client.MGet(ctx, s.key(KeyAccessToken), s.key(KeyRefreshToken)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return Credentials{}, fmt.Errorf("redis mget credentials: %w", err)
	}

	var creds Credentials
	if len(values) == 2 {
		creds.AccessToken, _ = values[0].(string)
		creds.RefreshToken, _ = values[1].(string)
	}
	return creds, nil
}

func (s *RedisStore) Set(ctx context.Context, creds Credentials) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for name, value := range map[string]string{
			KeyAccessToken:  creds.AccessToken,
			KeyRefreshToken: creds.RefreshToken,
		} {
			if value == "" {
				pipe.Del(ctx, s.key(name))
				continue
			}
			pipe.Set(ctx, s.key(name), value, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis store credentials: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(KeyAccessToken), s.key(KeyRefreshToken)).Err(); err != nil {
		return fmt.Errorf("redis clear credentials: %w", err)
	}
	return nil
}
