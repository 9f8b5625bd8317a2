// Package redisrepo keeps the refresh token in Redis for headless clients
// (bots, CI jobs) that share one service identity across hosts.
package redisrepo

import (
	"context"

	"github.com/jrsteele09/go-reviews-client/credentials"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var _ credentials.Repo = (*RedisRepo)(nil)

// RedisRepo stores the refresh token under a single key with no expiry; the
// backend, not the carrier, decides when a refresh token stops working.
type RedisRepo struct {
	client *redis.Client
	key    string
}

// New creates a Redis-backed carrier under key.
func New(client *redis.Client, key string) *RedisRepo {
	return &RedisRepo{client: client, key: key}
}

func (rr *RedisRepo) Load(ctx context.Context) (string, error) {
	refreshToken, err := rr.client.Get(ctx, rr.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", credentials.ErrNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "[RedisRepo.Load] Get")
	}
	if refreshToken == "" {
		return "", credentials.ErrNotFound
	}
	return refreshToken, nil
}

func (rr *RedisRepo) Save(ctx context.Context, refreshToken string) error {
	if err := rr.client.Set(ctx, rr.key, refreshToken, 0).Err(); err != nil {
		return errors.Wrap(err, "[RedisRepo.Save] Set")
	}
	return nil
}

func (rr *RedisRepo) Clear(ctx context.Context) error {
	if err := rr.client.Del(ctx, rr.key).Err(); err != nil {
		return errors.Wrap(err, "[RedisRepo.Clear] Del")
	}
	return nil
}
