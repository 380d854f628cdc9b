package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"task-manager-service/cmd/api/di"
	"task-manager-service/internal/adapter/gin/router"
	"task-manager-service/internal/config"
)

// Server holds the HTTP server and its dependencies.
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a server instance with the routing tree wired from the
// container's handlers.
func New(cfg *config.Config, l *zap.Logger, c *di.Container) *Server {
	var rdb *redis.Client
	if c.RedisClient != nil {
		rdb = c.RedisClient.Client
	}
	engine := router.New(cfg, c.Sessions, rdb, c.AuthHandler, c.TaskHandler, l)

	return &Server{
		Config: cfg,
		Logger: l,
		HTTP: &http.Server{
			Addr:              ":" + cfg.App.HTTPPort,
			Handler:           engine,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// WithSignal derives a context that ends on SIGINT or SIGTERM, driving
// the graceful shutdown path.
func WithSignal(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// Start begins serving HTTP requests. It blocks until the server stops.
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.HTTP.Addr))

	if err := s.HTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
