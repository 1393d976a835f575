package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshSessionStore is the allow-list of currently valid refresh tokens,
// one peppered hash per user. Rotation overwrites the entry, logout deletes
// it; a refresh token whose hash is no longer present is dead regardless of
// its signed expiry.
type RefreshSessionStore interface {
	Put(ctx context.Context, userID, tokenHash string, ttl time.Duration) error
	// Consume atomically removes the entry when the hash matches, so a
	// refresh token can be rotated at most once.
	Consume(ctx context.Context, userID, tokenHash string) (bool, error)
	Revoke(ctx context.Context, userID string) error
}

type RedisRefreshSessionStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisRefreshSessionStore(client redis.UniversalClient, prefix string) *RedisRefreshSessionStore {
	if prefix == "" {
		prefix = "refresh"
	}
	return &RedisRefreshSessionStore{client: client, prefix: prefix}
}

func (s *RedisRefreshSessionStore) Put(ctx context.Context, userID, tokenHash string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(userID), tokenHash, ttl).Err()
}

func (s *RedisRefreshSessionStore) Consume(ctx context.Context, userID, tokenHash string) (bool, error) {
	result, err := redisCompareAndDeleteScript.Run(ctx, s.client, []string{s.key(userID)}, tokenHash).Result()
	if err != nil {
		return false, err
	}
	n, err := parseRedisInt64(result)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *RedisRefreshSessionStore) Revoke(ctx context.Context, userID string) error {
	return s.client.Del(ctx, s.key(userID)).Err()
}

func (s *RedisRefreshSessionStore) key(userID string) string {
	return s.prefix + ":" + userID
}
