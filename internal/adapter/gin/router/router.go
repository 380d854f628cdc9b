package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"task-manager-service/internal/adapter/gin/handler"
	"task-manager-service/internal/adapter/gin/middleware"
	"task-manager-service/internal/adapter/session"
	"task-manager-service/internal/config"
)

// New builds the HTTP routing tree with the full middleware chain.
// Everything lives under /api; the task routes require an
// authenticated session. rdb may be nil, which disables the rate
// limiter.
func New(
	cfg *config.Config,
	sessions session.Store,
	rdb *redis.Client,
	authHandler *handler.AuthHandler,
	taskHandler *handler.TaskHandler,
	log *zap.Logger,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.RateLimit(rdb, middleware.RateLimitConfig{
			Enabled:           cfg.RateLimit.Enabled,
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstCapacity:     cfg.RateLimit.BurstCapacity,
		}, log),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.LoadSession(sessions, cfg.Session.CookieName, log),
	)

	api := engine.Group("/api")
	{
		api.GET("/health", authHandler.Health)

		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authHandler.Me)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.List)
			tasks.POST("", taskHandler.Create)
			// Registered before /:id so "stats" is never read as an id.
			tasks.GET("/stats", taskHandler.Stats)
			tasks.GET("/:id", taskHandler.Get)
			tasks.PUT("/:id", taskHandler.Update)
			tasks.DELETE("/:id", taskHandler.Delete)
			tasks.PATCH("/:id/toggle", taskHandler.Toggle)
		}
	}

	return engine
}
