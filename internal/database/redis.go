package database

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Kunalgarg108/ShareSpace/internal/config"
)

var Redis *redis.Client
var Ctx = context.Background()

func InitRedis() {
	if config.AppConfig.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, caching disabled")
		return
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	if _, err := Redis.Ping(Ctx).Result(); err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Caching will be disabled.", err)
		Redis = nil
		return
	}
	log.Println("Connected to Redis successfully")
}

// CacheSet stores a JSON-encoded value. No-op when Redis is unavailable.
func CacheSet(key string, value interface{}, expiration time.Duration) error {
	if Redis == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Redis.Set(Ctx, key, data, expiration).Err()
}

// CacheGet loads a JSON-encoded value into dest. Returns redis.Nil on miss.
func CacheGet(key string, dest interface{}) error {
	if Redis == nil {
		return redis.Nil
	}
	val, err := Redis.Get(Ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// CacheInvalidate removes a single key.
func CacheInvalidate(key string) error {
	if Redis == nil {
		return nil
	}
	return Redis.Del(Ctx, key).Err()
}
