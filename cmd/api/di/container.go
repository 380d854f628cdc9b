package di

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"task-manager-service/cmd/api/infrastructure"
	"task-manager-service/internal/adapter/gin/handler"
	"task-manager-service/internal/adapter/session"
	"task-manager-service/internal/config"
	"task-manager-service/internal/usecase/auth"
	"task-manager-service/internal/usecase/task"
	redisclient "task-manager-service/pkg/redis"
	"task-manager-service/pkg/security"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	Stores      *infrastructure.Stores
	RedisClient *redisclient.Client
	Sessions    session.Store
	AuthUC      auth.Usecase
	TaskUC      task.Usecase
	AuthHandler *handler.AuthHandler
	TaskHandler *handler.TaskHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Initialize persistence
	stores, err := infrastructure.NewStores(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize stores: %w", err)
	}

	// Redis is only dialed when the session store needs it
	var rdb *redisclient.Client
	if cfg.Session.Store == config.SessionStoreRedis {
		rdb, err = infrastructure.NewRedisClient(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
	}

	sessions, err := infrastructure.NewSessionStore(cfg, rdb, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	hasher := security.NewBcryptHasher(cfg.App.BcryptCost)

	// Initialize use cases
	authUC := auth.New(stores.Users, sessions, hasher, l)
	taskUC := task.New(stores.Tasks, l)

	// Initialize HTTP handlers
	cookie := handler.CookieConfig{
		Name:      cfg.Session.CookieName,
		TTL:       time.Duration(cfg.Session.TTLSeconds) * time.Second,
		CrossSite: cfg.IsProduction(),
	}
	authHandler := handler.NewAuthHandler(authUC, cookie, cfg.App.Env, l)
	taskHandler := handler.NewTaskHandler(taskUC, l)

	return &Container{
		Config:      cfg,
		Logger:      l,
		Stores:      stores,
		RedisClient: rdb,
		Sessions:    sessions,
		AuthUC:      authUC,
		TaskUC:      taskUC,
		AuthHandler: authHandler,
		TaskHandler: taskHandler,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.Stores != nil {
		if err := c.Stores.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close stores: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
