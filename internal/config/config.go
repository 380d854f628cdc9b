package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Store backend identifiers.
const (
	StoreBackendJSONFile = "jsonfile"
	StoreBackendSQLite   = "sqlite"
)

// Session store identifiers.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

const defaultSessionSecret = "change-me-in-production"

// Config holds all configuration for the application
type Config struct {
	App       AppConfig
	Store     StoreConfig
	Session   SessionConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Logger    LoggerConfig
}

// AppConfig holds configuration for the application server
type AppConfig struct {
	Env                    string `mapstructure:"APP_ENV"`
	HTTPPort               string `mapstructure:"HTTP_PORT"`
	ShutdownTimeoutSeconds int    `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS"`
	BcryptCost             int    `mapstructure:"BCRYPT_COST"`
}

// StoreConfig holds configuration for the record store
type StoreConfig struct {
	Backend    string `mapstructure:"STORE_BACKEND"`
	DataDir    string `mapstructure:"DATA_DIR"`
	SQLitePath string `mapstructure:"SQLITE_PATH"`
}

// SessionConfig holds configuration for session handling
type SessionConfig struct {
	Store      string `mapstructure:"SESSION_STORE"`
	Secret     string `mapstructure:"SESSION_SECRET"`
	CookieName string `mapstructure:"SESSION_NAME"`
	TTLSeconds int    `mapstructure:"SESSION_TTL_SECONDS"`
}

// RedisConfig holds configuration for the Redis session backend
type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
	PoolSize int    `mapstructure:"REDIS_POOL_SIZE"`
}

// RateLimitConfig holds the per-client request throttle settings
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"RATE_LIMIT_ENABLED"`
	RequestsPerSecond float64 `mapstructure:"RATE_LIMIT_REQUESTS_PER_SECOND"`
	BurstCapacity     int     `mapstructure:"RATE_LIMIT_BURST_CAPACITY"`
}

// CORSConfig holds the cross-origin allow-list
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level          string `mapstructure:"LOG_LEVEL"`
	Format         string `mapstructure:"LOG_FORMAT"`
	OutputPath     string `mapstructure:"LOG_OUTPUT_PATH"`
	EnableSampling bool   `mapstructure:"LOG_ENABLE_SAMPLING"`
	ServiceName    string `mapstructure:"SERVICE_NAME"`
	ServiceVersion string `mapstructure:"SERVICE_VERSION"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (*Config, error) {
	setDefaults()

	viper.AddConfigPath(path)
	viper.SetConfigName("app") // Look for app.env
	viper.SetConfigType("env")

	viper.AutomaticEnv() // Read from environment variables

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if we have env vars
	}

	var config Config

	config.App.Env = viper.GetString("APP_ENV")
	config.App.HTTPPort = viper.GetString("HTTP_PORT")
	config.App.ShutdownTimeoutSeconds = viper.GetInt("SHUTDOWN_TIMEOUT_SECONDS")
	config.App.BcryptCost = viper.GetInt("BCRYPT_COST")

	config.Store.Backend = viper.GetString("STORE_BACKEND")
	config.Store.DataDir = viper.GetString("DATA_DIR")
	config.Store.SQLitePath = viper.GetString("SQLITE_PATH")

	config.Session.Store = viper.GetString("SESSION_STORE")
	config.Session.Secret = viper.GetString("SESSION_SECRET")
	config.Session.CookieName = viper.GetString("SESSION_NAME")
	config.Session.TTLSeconds = viper.GetInt("SESSION_TTL_SECONDS")

	config.Redis.Host = viper.GetString("REDIS_HOST")
	config.Redis.Port = viper.GetString("REDIS_PORT")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")
	config.Redis.PoolSize = viper.GetInt("REDIS_POOL_SIZE")

	config.RateLimit.Enabled = viper.GetBool("RATE_LIMIT_ENABLED")
	config.RateLimit.RequestsPerSecond = viper.GetFloat64("RATE_LIMIT_REQUESTS_PER_SECOND")
	config.RateLimit.BurstCapacity = viper.GetInt("RATE_LIMIT_BURST_CAPACITY")

	config.CORS.AllowedOrigins = splitOrigins(viper.GetString("CORS_ALLOWED_ORIGINS"))

	config.Logger.Level = viper.GetString("LOG_LEVEL")
	config.Logger.Format = viper.GetString("LOG_FORMAT")
	config.Logger.OutputPath = viper.GetString("LOG_OUTPUT_PATH")
	config.Logger.EnableSampling = viper.GetBool("LOG_ENABLE_SAMPLING")
	config.Logger.ServiceName = viper.GetString("SERVICE_NAME")
	config.Logger.ServiceVersion = viper.GetString("SERVICE_VERSION")

	return &config, nil
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreBackendJSONFile, StoreBackendSQLite:
	default:
		return fmt.Errorf("unknown store backend: %q", c.Store.Backend)
	}

	switch c.Session.Store {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return fmt.Errorf("unknown session store: %q", c.Session.Store)
	}

	if c.Session.TTLSeconds <= 0 {
		return fmt.Errorf("session TTL must be positive, got %d", c.Session.TTLSeconds)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.BurstCapacity <= 0) {
		return fmt.Errorf("rate limit rate and burst must be positive when enabled")
	}

	if c.IsProduction() && c.Session.Secret == defaultSessionSecret {
		return fmt.Errorf("SESSION_SECRET must be set in production")
	}

	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func setDefaults() {
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("HTTP_PORT", "8080")
	viper.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)
	viper.SetDefault("BCRYPT_COST", 12)

	viper.SetDefault("STORE_BACKEND", StoreBackendJSONFile)
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("SQLITE_PATH", "./data/taskmanager.db")

	viper.SetDefault("SESSION_STORE", SessionStoreMemory)
	viper.SetDefault("SESSION_SECRET", defaultSessionSecret)
	viper.SetDefault("SESSION_NAME", "task-manager-session")
	viper.SetDefault("SESSION_TTL_SECONDS", 86400) // 24 hours

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_POOL_SIZE", 10)

	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_REQUESTS_PER_SECOND", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST_CAPACITY", 20)

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	// Logger defaults
	env := viper.GetString("APP_ENV")
	if env == "production" {
		viper.SetDefault("LOG_LEVEL", "info")
		viper.SetDefault("LOG_FORMAT", "json")
		viper.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		viper.SetDefault("LOG_LEVEL", "debug")
		viper.SetDefault("LOG_FORMAT", "console")
		viper.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
	viper.SetDefault("LOG_OUTPUT_PATH", "stdout")
	viper.SetDefault("SERVICE_NAME", "task-manager-service")
	viper.SetDefault("SERVICE_VERSION", "1.0.0")
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
