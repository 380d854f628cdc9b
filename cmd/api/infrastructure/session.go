package infrastructure

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"task-manager-service/internal/adapter/session"
	"task-manager-service/internal/config"
	redisclient "task-manager-service/pkg/redis"
)

// NewRedisClient creates a Redis client from configuration.
func NewRedisClient(cfg *config.Config, l *zap.Logger) (*redisclient.Client, error) {
	rdb, err := redisclient.NewClient(redisclient.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}, l)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

// NewSessionStore builds the session store named in the configuration.
// The redis variant needs a connected client; the memory variant keeps
// sessions in-process and loses them on restart.
func NewSessionStore(cfg *config.Config, rdb *redisclient.Client, l *zap.Logger) (session.Store, error) {
	ttl := time.Duration(cfg.Session.TTLSeconds) * time.Second

	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis session store requires a redis client")
		}
		return session.NewRedisStore(rdb.Client, ttl, l), nil
	case config.SessionStoreMemory:
		return session.NewMemoryStore(ttl), nil
	default:
		return nil, fmt.Errorf("unknown session store: %q", cfg.Session.Store)
	}
}
