package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,         default=8080"`
	Env       string `env:"ENV,          default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL,    default=info"`

	// EnableCache selects the real course cache or the no-op one at
	// startup; call sites never branch on it.
	EnableCache bool `env:"ENABLE_CACHE, default=true"`

	Postgres PostgresConfig
	Redis    RedisConfig
	Queue    QueueConfig
}

type PostgresConfig struct {
	Host     string `env:"DB_HOST,     default=localhost"`
	Port     string `env:"DB_PORT,     default=5432"`
	User     string `env:"DB_USER,     default=postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME,     default=coursehub"`
	SSLMode  string `env:"DB_SSLMODE,  default=disable"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type QueueConfig struct {
	Workers int `env:"QUEUE_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
