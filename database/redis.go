package database

import (
	"context"
	"log/slog"

	"fintrack-backend/config"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// ConnectRedis is optional: the service runs without the summary cache
// when Redis is unreachable.
func ConnectRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr: config.AppConfig.RedisURL,
	})

	_, err := Redis.Ping(context.Background()).Result()
	if err != nil {
		slog.Warn("redis not available, running without summary cache", "error", err)
		Redis = nil
		return
	}

	slog.Info("redis connected")
}
