package service

import (
	"context"
	"fmt"
	"time"

	"github.com/applymate/applymate-backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

// OtpStore holds the live one-time codes. An entry here is the sole source of
// truth for "is this code currently valid"; the audit rows never are.
type OtpStore interface {
	Put(ctx context.Context, purpose domain.OtpPurpose, userID, code string, ttl time.Duration) error
	// CheckAndConsume atomically compares the stored code and deletes it on
	// match, so two concurrent validations can never both succeed.
	CheckAndConsume(ctx context.Context, purpose domain.OtpPurpose, userID, code string) (bool, error)
	Delete(ctx context.Context, purpose domain.OtpPurpose, userID string) error
}

// redisCompareAndDeleteScript deletes the key only when its value equals
// ARGV[1]. Returns 1 on consume, 0 otherwise.
var redisCompareAndDeleteScript = redis.NewScript(`
local stored = redis.call("GET", KEYS[1])
if not stored or stored ~= ARGV[1] then
  return 0
end
redis.call("DEL", KEYS[1])
return 1
`)

type RedisOtpStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisOtpStore(client redis.UniversalClient, prefix string) *RedisOtpStore {
	if prefix == "" {
		prefix = "otp"
	}
	return &RedisOtpStore{client: client, prefix: prefix}
}

func (s *RedisOtpStore) Put(ctx context.Context, purpose domain.OtpPurpose, userID, code string, ttl time.Duration) error {
	key, err := s.key(purpose, userID)
	if err != nil {
		return err
	}
	// Plain SET: a reissued code silently supersedes any live one at this key.
	return s.client.Set(ctx, key, code, ttl).Err()
}

func (s *RedisOtpStore) CheckAndConsume(ctx context.Context, purpose domain.OtpPurpose, userID, code string) (bool, error) {
	key, err := s.key(purpose, userID)
	if err != nil {
		return false, err
	}
	result, err := redisCompareAndDeleteScript.Run(ctx, s.client, []string{key}, code).Result()
	if err != nil {
		return false, err
	}
	n, err := parseRedisInt64(result)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *RedisOtpStore) Delete(ctx context.Context, purpose domain.OtpPurpose, userID string) error {
	key, err := s.key(purpose, userID)
	if err != nil {
		return err
	}
	return s.client.Del(ctx, key).Err()
}

func (s *RedisOtpStore) key(purpose domain.OtpPurpose, userID string) (string, error) {
	slot, err := purpose.CacheSlot()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s:%s", s.prefix, slot, userID), nil
}

func parseRedisInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("unexpected redis response type %T", v)
	}
}
