// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// DatabaseURL wins over the discrete PG_* variables when set.
	DatabaseURL    string `env:"DATABASE_URL"`
	PGUser         string `env:"POSTGRES_USER"`
	PGPassword     string `env:"POSTGRES_PASSWORD"`
	PGHost         string `env:"PG_HOST" envDefault:"localhost"`
	PGPort         string `env:"PG_PORT" envDefault:"5432"`
	PGDatabase     string `env:"PG_DATABASE"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START" envDefault:"true"`

	CluebaseURL     string        `env:"CLUEBASE_API_URL" envDefault:"https://cluebase.herokuapp.com"`
	CluebaseTimeout time.Duration `env:"CLUEBASE_TIMEOUT" envDefault:"30s"`

	// RedisAddr empty disables the pool cache and game events.
	RedisAddr        string        `env:"REDIS_ADDR"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	CluePoolCacheTTL time.Duration `env:"CLUE_POOL_CACHE_TTL" envDefault:"5m"`
	GameEventsQueue  string        `env:"GAME_EVENTS_QUEUE" envDefault:"trivia_game_events"`

	JWTPublicKeyPath  string `env:"JWT_PUBLIC_KEY_PATH"`
	JWTPrivateKeyPath string `env:"JWT_PRIVATE_KEY_PATH"`
	TokenExpireTime   string `env:"TOKEN_EXPIRE_TIME" envDefault:"never"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field requirements env tags cannot express.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" && (c.PGUser == "" || c.PGDatabase == "") {
		return fmt.Errorf("config: DATABASE_URL or POSTGRES_USER and PG_DATABASE must be set")
	}
	if c.CluebaseTimeout <= 0 {
		return fmt.Errorf("config: CLUEBASE_TIMEOUT must be positive, got %s", c.CluebaseTimeout)
	}
	if c.CluePoolCacheTTL < 0 {
		return fmt.Errorf("config: CLUE_POOL_CACHE_TTL must not be negative")
	}
	return nil
}

// PostgresDSN returns DatabaseURL or a DSN assembled from the PG_* parts.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}
