package redisrelay_test

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/broadcast"
	"github.com/dmitrymomot/broadcast/redisrelay"
)

func TestLoadConfig(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := redisrelay.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "redis://localhost:6379/0", cfg.ConnectionURL)
		assert.Equal(t, "broadcast", cfg.Channel)
		assert.Equal(t, 30*time.Second, cfg.ConnectTimeout)
	})

	t.Run("reads environment overrides", func(t *testing.T) {
		t.Setenv("BROADCAST_REDIS_URL", "redis://cache.internal:6380/1")
		t.Setenv("BROADCAST_REDIS_CHANNEL", "orders")
		t.Setenv("BROADCAST_REDIS_CONNECT_TIMEOUT", "5s")

		cfg, err := redisrelay.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "redis://cache.internal:6380/1", cfg.ConnectionURL)
		assert.Equal(t, "orders", cfg.Channel)
		assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("accepts complete config", func(t *testing.T) {
		t.Parallel()

		cfg := redisrelay.Config{
			ConnectionURL: "redis://localhost:6379/0",
			Channel:       "broadcast",
		}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("rejects empty connection URL", func(t *testing.T) {
		t.Parallel()

		cfg := redisrelay.Config{Channel: "broadcast"}
		assert.ErrorIs(t, cfg.Validate(), redisrelay.ErrFailedToParseConnString)
	})

	t.Run("rejects empty channel", func(t *testing.T) {
		t.Parallel()

		cfg := redisrelay.Config{ConnectionURL: "redis://localhost:6379/0"}
		assert.ErrorIs(t, cfg.Validate(), redisrelay.ErrEmptyChannel)
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects nil client", func(t *testing.T) {
		t.Parallel()

		bus := broadcast.New[string]()
		defer bus.Close()

		_, err := redisrelay.New(nil, bus)
		assert.ErrorIs(t, err, redisrelay.ErrNilClient)
	})

	t.Run("rejects nil bus", func(t *testing.T) {
		t.Parallel()

		// Creating a client does not dial, so no Redis is needed here.
		client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
		defer client.Close()

		_, err := redisrelay.New[string](client, nil)
		assert.ErrorIs(t, err, redisrelay.ErrNilBus)
	})
}
