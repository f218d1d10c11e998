package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns a client when REDIS_URL or REDIS_ADDR is set and the
// server answers a ping. Otherwise it returns nil and the app runs without cache.
func ConnectRedis(ctx context.Context, cfg RedisConfig) *redis.Client {
	const op = "config.ConnectRedis"
	log := slog.With("op", op)

	var opt *redis.Options
	switch {
	case cfg.URL != "":
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			log.Warn("failed to parse redis url, running without cache", "err", err)
			return nil
		}
		opt = parsed
	case cfg.Addr != "":
		opt = &redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       0,
		}
	default:
		log.Info("redis not configured, running without cache")
		return nil
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis connection failed, running without cache", "err", err)
		_ = client.Close()
		return nil
	}

	log.Info("redis connected", "addr", opt.Addr)
	return client
}

func CloseRedis(client *redis.Client) {
	if client != nil {
		_ = client.Close()
	}
}
