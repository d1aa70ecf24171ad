package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	JWTSecret string `env:"JWT_SECRET"`

	// SessionTTL bounds how long a signed-in session stays valid without a
	// fresh login. Zero disables expiry (not recommended outside dev).
	SessionTTL time.Duration `env:"SESSION_TTL, default=12h"`

	// SessionStore selects the session backend: redis, mongo or memory.
	SessionStore string `env:"SESSION_STORE, default=redis"`

	Backend BackendConfig
	Redis   RedisConfig
	Mongo   MongoConfig
}

// BackendConfig locates the school REST backend the portal fetches from.
type BackendConfig struct {
	BaseURL string        `env:"BACKEND_BASE_URL, default=http://localhost:9090/api"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT,  default=10s"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI,      default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DATABASE, default=portal"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Env != "development" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required outside development")
	}
	switch cfg.SessionStore {
	case "redis", "mongo", "memory":
	default:
		return nil, fmt.Errorf("config: unknown SESSION_STORE %q", cfg.SessionStore)
	}
	return &cfg, nil
}
