package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sethvargo/go-envconfig"
)

// Backend selectors for the identity directory and the session store.
const (
	DirectoryLocal  = "local"
	DirectoryRemote = "remote"
	DirectoryMongo  = "mongo"

	SessionStoreFile  = "file"
	SessionStoreRedis = "redis"
)

type Config struct {
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=true"`

	Directory    string `env:"RENTLY_DIRECTORY,     default=local"`
	SessionStore string `env:"RENTLY_SESSION_STORE, default=file"`
	StateDir     string `env:"RENTLY_STATE_DIR"`
	APIBaseURL   string `env:"RENTLY_API_BASE_URL,  default=http://localhost:8000"`

	Redis RedisConfig
	Mongo MongoConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=rently"`
}

// Load reads configuration from environment variables using go-envconfig.
// When no state directory is set it falls back to <user config dir>/rently;
// if no user config dir exists either, StateDir stays empty and the file
// adapters run in their storage-unavailable mode.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.StateDir == "" {
		if base, err := os.UserConfigDir(); err == nil {
			cfg.StateDir = filepath.Join(base, "rently")
		}
	}
	return &cfg, nil
}
