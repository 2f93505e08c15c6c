package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"youapp-client/internal/config"
)

// New construye el Store indicado por SESSION_BACKEND.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.SessionBackend))
	switch backend {
	case "", "file":
		return NewFileStore(cfg.SessionFile)
	case "memory":
		logger.Warn("session backend is memory; sessions will not survive restarts")
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(ctx, cfg.SessionSQLitePath)
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis session backend requires REDIS_ADDR")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(ctxPing).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return NewRedisStore(client, cfg.SessionRedisPrefix), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.SessionBackend)
	}
}
