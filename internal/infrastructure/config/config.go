package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=1337"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// BcryptCost is the password hashing work factor. Changing it only
	// affects newly stored hashes; existing ones verify with the cost
	// embedded in them.
	BcryptCost int `env:"BCRYPT_COST, default=10"`

	// FanoutWorkers sizes the notification fan-out worker pool.
	FanoutWorkers int `env:"FANOUT_WORKERS, default=8"`

	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// JWTConfig is process-wide and immutable once loaded. Rotating the secret
// invalidates every outstanding token.
type JWTConfig struct {
	Secret string        `env:"JWT_SECRET, required"`
	Issuer string        `env:"JWT_ISSUER, default=api.featherback.co"`
	TTL    time.Duration `env:"JWT_TTL,    default=24h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=featherback"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
