// redis.go -- go-redis client for provider access-token records.
//
// One record per account, keyed by the composite UID. Records are
// overwritten on every login and never merged; the stored value always
// reflects the most recent authentication.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore wraps a Redis client for access-token operations.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects to Redis and pings it to verify connectivity.
// Call once at startup; the returned store is safe for concurrent use.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return &RedisStore{rdb}, nil
}

// Close shuts down the Redis client. Call via defer after creation.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// SetAccessToken stores the raw provider access token for the account,
// replacing any previous record. No TTL -- the token lives until the next
// login overwrites it.
func (s *RedisStore) SetAccessToken(ctx context.Context, uid, accessToken string) error {
	if err := s.rdb.Set(ctx, accessTokenKey(uid), accessToken, 0).Err(); err != nil {
		return fmt.Errorf("storing access token: %w", err)
	}
	return nil
}

// GetAccessToken fetches the stored provider access token for the account.
// Returns ErrTokenNotFound when no record exists.
func (s *RedisStore) GetAccessToken(ctx context.Context, uid string) (string, error) {
	val, err := s.rdb.Get(ctx, accessTokenKey(uid)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("fetching access token: %w", err)
	}
	return val, nil
}

// accessTokenKey builds the Redis key for an account's token record.
func accessTokenKey(uid string) string {
	return fmt.Sprintf("linkedin_access_token:%s", uid)
}
