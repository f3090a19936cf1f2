package redisrelay_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/broadcast"
	"github.com/dmitrymomot/broadcast/redisrelay"
)

// requireRedis connects to the Redis instance named by TEST_REDIS_URL and
// skips the test when none is available.
func requireRedis(t *testing.T) redis.UniversalClient {
	t.Helper()

	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set; skipping redis integration test")
	}

	opts, err := redis.ParseURL(url)
	require.NoError(t, err)

	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx).Err())

	return client
}

func TestIntegration_CrossProcessDelivery(t *testing.T) {
	client := requireRedis(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	channel := "redisrelay-test-" + t.Name()

	// Two "processes": each with its own bus and relay on the same channel.
	busA := broadcast.New[string]()
	defer busA.Close()
	busB := broadcast.New[string]()
	defer busB.Close()

	relayA, err := redisrelay.New(client, busA, redisrelay.WithChannel(channel))
	require.NoError(t, err)
	relayB, err := redisrelay.New(client, busB, redisrelay.WithChannel(channel))
	require.NoError(t, err)

	errA := make(chan error, 1)
	errB := make(chan error, 1)
	go func() { errA <- relayA.Listen(ctx) }()
	go func() { errB <- relayB.Listen(ctx) }()

	// Give both subscriptions a moment to establish.
	time.Sleep(200 * time.Millisecond)

	rxA := busA.Subscribe()
	rxB := busB.Subscribe()

	require.NoError(t, relayA.Broadcast(ctx, "from A"))

	// Local delivery on A is immediate.
	v, err := rxA.Recv()
	require.NoError(t, err)
	assert.Equal(t, "from A", v)

	// Remote delivery reaches B via Redis.
	got := make(chan string, 1)
	go func() {
		if v, err := rxB.Recv(); err == nil {
			got <- v
		}
	}()

	select {
	case v := <-got:
		assert.Equal(t, "from A", v)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for cross-process delivery")
	}

	// A must not receive its own echo a second time. The message has
	// already round-tripped to B, so give A's inbound loop a beat too.
	time.Sleep(100 * time.Millisecond)
	_, ok, err := rxA.TryRecv()
	require.NoError(t, err)
	assert.False(t, ok, "publisher received its own echo")

	cancel()
	for _, ch := range []chan error{errA, errB} {
		select {
		case err := <-ch:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(5 * time.Second):
			t.Fatal("relay did not stop after context cancellation")
		}
	}
}
