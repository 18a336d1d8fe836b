// Package storage provides the durable key-value slots the client keeps
// between runs (access and refresh tokens).
package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/taskboard-client/internal/config"
	"github.com/yukikurage/taskboard-client/internal/database"
)

// Storage is a durable string key-value store.
type Storage interface {
	// Get returns the value stored under key and whether it exists
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error

	// Delete removes the given keys; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error

	// Close releases the underlying connection
	Close() error
}

// Open returns the backend selected by cfg.StorageDriver.
func Open(cfg *config.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case "memory":
		return NewMemory(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return NewRedis(client, DefaultRedisPrefix), nil
	case "sqlite", "mysql", "postgres":
		db, err := database.Connect(cfg.StorageDriver, cfg.StorageDSN, logger.Silent)
		if err != nil {
			return nil, err
		}
		return NewGorm(db)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
