package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"netivim/internal/lib/sl"
	"netivim/internal/store"
)

type Redis struct {
	client *redis.Client
	key    string
	log    *slog.Logger
}

func NewRedisClient(url, key string, logger *slog.Logger) *Redis {
	opt, err := redis.ParseURL(url)
	if err != nil {
		logger.With(sl.Module("redis")).Warn("invalid redis url, using defaults", sl.Err(err))
		opt = &redis.Options{Addr: "127.0.0.1:6379"}
	}
	return NewRedis(redis.NewClient(opt), key, logger)
}

func NewRedis(client *redis.Client, key string, logger *slog.Logger) *Redis {
	return &Redis{
		client: client,
		key:    key,
		log:    logger.With(sl.Module("redis")),
	}
}

func (r *Redis) Load(ctx context.Context) ([]byte, error) {
	blob, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("redis get error: %w", err)
	}
	return blob, nil
}

func (r *Redis) Save(ctx context.Context, blob []byte) error {
	if err := r.client.Set(ctx, r.key, blob, 0).Err(); err != nil {
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
