package services

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// GetFromRedis loads a cached JSON value into dest.
func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, dest interface{}) error {
	val, err := rdb.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// SetToRedis stores an already-marshaled JSON payload under key.
func SetToRedis(ctx context.Context, rdb *redis.Client, key string, data []byte, expiration time.Duration) error {
	return rdb.Set(ctx, key, data, expiration).Err()
}

func DeleteFromRedis(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err()
}
