package redisrelay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
)

// Config holds relay configuration with environment variable mapping.
// Designed for environment-based configuration using the caarlos0/env parser.
type Config struct {
	ConnectionURL  string        `env:"BROADCAST_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	Channel        string        `env:"BROADCAST_REDIS_CHANNEL" envDefault:"broadcast"`
	ConnectTimeout time.Duration `env:"BROADCAST_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// LoadConfig parses the relay configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load relay config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the relay cannot work with.
func (c Config) Validate() error {
	if c.ConnectionURL == "" {
		return ErrFailedToParseConnString
	}
	if c.Channel == "" {
		return ErrEmptyChannel
	}
	return nil
}

// Connect creates a Redis client from the configuration and verifies
// connectivity with a ping before returning it.
//
// Example:
//
//	cfg, err := redisrelay.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//	client, err := redisrelay.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
func Connect(ctx context.Context, cfg Config) (redis.UniversalClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseConnString, err)
	}

	client := redis.NewClient(opts)

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Join(ErrRedisNotReady, err)
	}

	return client, nil
}

// Healthcheck returns a health check function suitable for readiness probes.
// The returned function pings Redis and reports connectivity problems.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrRedisNotReady, err)
		}
		return nil
	}
}
