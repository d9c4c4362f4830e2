package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mnuddindev/routinely/pkg/logger"
	"github.com/mnuddindev/routinely/pkg/utils"
	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	*redis.Client
	log *logger.Logger
}

// NewRedis initializes a Redis client with context.
func NewRedis(ctx context.Context, addr, password string, log *logger.Logger) (*RedisClient, error) {
	if err := ctx.Err(); err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "redis initialization canceled")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, utils.NewError(utils.ErrInternalServerError.Code, "Failed to connect to Redis", err.Error())
	}

	return &RedisClient{Client: client, log: log}, nil
}

// Fetch decodes the JSON value stored at key into dst. Misses and decode
// failures both report false.
func (r *RedisClient) Fetch(ctx context.Context, key string, dst interface{}) bool {
	data, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn(ctx).WithFields("key", key, "error", err).Logs("Redis read failed")
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		r.log.Warn(ctx).WithFields("key", key, "error", err).Logs("Failed to decode cached value")
		return false
	}
	return true
}

// Store caches value as JSON. Failures are logged and otherwise ignored.
func (r *RedisClient) Store(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		r.log.Warn(ctx).WithFields("key", key, "error", err).Logs("Failed to encode value for cache")
		return
	}
	if err := r.Client.Set(ctx, key, data, ttl).Err(); err != nil {
		r.log.Warn(ctx).WithFields("key", key, "error", err).Logs("Redis write failed")
	}
}

// Generation returns the current value of a version counter, 0 when unset.
func (r *RedisClient) Generation(ctx context.Context, key string) int64 {
	n, err := r.Client.Get(ctx, key).Int64()
	if err != nil {
		return 0
	}
	return n
}

// Bump increments a version counter so keys derived from the old value go stale.
func (r *RedisClient) Bump(ctx context.Context, key string) {
	if err := r.Client.Incr(ctx, key).Err(); err != nil {
		r.log.Warn(ctx).WithFields("key", key, "error", err).Logs("Redis increment failed")
	}
}

// Revoke blacklists a token until ttl elapses.
func (r *RedisClient) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	return r.Client.Set(ctx, "blacklist:access:"+token, "invalid", ttl).Err()
}

// IsRevoked reports whether token was blacklisted by Revoke.
func (r *RedisClient) IsRevoked(ctx context.Context, token string) bool {
	return r.Client.Exists(ctx, "blacklist:access:"+token).Val() > 0
}

// Close shuts down the Redis connection.
func (r *RedisClient) Close() error {
	if err := r.Client.Close(); err != nil {
		r.log.Error(context.Background()).WithMeta(map[string]string{"error": err.Error()}).Logs("Redis close failed")
		return utils.NewError(utils.ErrInternalServerError.Code, "Failed to close Redis", err.Error())
	}
	r.log.Info(context.Background()).Logs("Redis connection closed successfully")
	return nil
}
