package broadcast_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/broadcast"
)

// Single-send, multi-consumer followed by a streamed sequence drained on
// separate goroutines.
func TestIntegration_FanOutSequence(t *testing.T) {
	t.Parallel()

	bus := broadcast.New[any]()
	defer bus.Close()

	rx1 := bus.Subscribe()
	rx2 := bus.Subscribe()

	bus.Broadcast("Hello")

	v, err := rx1.Recv()
	require.NoError(t, err)
	assert.Equal(t, "Hello", v)

	v, err = rx2.Recv()
	require.NoError(t, err)
	assert.Equal(t, "Hello", v)

	// Stream 1..99 from one goroutine while both subscribers drain on
	// their own; each must observe the exact sequence in order.
	var wg sync.WaitGroup
	for _, rx := range []*broadcast.Subscriber[any]{rx1, rx2} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 1; i < 100; i++ {
				got, err := rx.Recv()
				assert.NoError(t, err)
				assert.Equal(t, i, got)
			}
		}()
	}

	go func() {
		for i := 1; i < 100; i++ {
			bus.Broadcast(i)
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout draining broadcast sequence")
	}
}

// Subscribers churn while broadcasts are in flight; the bus must neither
// deadlock nor deliver out of order to any individual subscriber.
func TestIntegration_ConcurrentChurn(t *testing.T) {
	t.Parallel()

	bus := broadcast.New[int]()
	defer bus.Close()

	const broadcasters = 4
	const perBroadcaster = 250

	stop := make(chan struct{})

	// Churning subscribers: subscribe, read a little, drop out. Their
	// closed handles must be pruned without disturbing anyone else.
	var churn sync.WaitGroup
	for n := 0; n < 8; n++ {
		churn.Add(1)
		go func() {
			defer churn.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}

				rx := bus.Subscribe()
				for n := 0; n < 5; n++ {
					if _, _, err := rx.TryRecv(); err != nil {
						break
					}
				}
				_ = rx.Close()
			}
		}()
	}

	// One stable subscriber counts everything.
	stable := bus.Subscribe()

	var pubs sync.WaitGroup
	for n := 0; n < broadcasters; n++ {
		pubs.Add(1)
		go func() {
			defer pubs.Done()
			for i := 0; i < perBroadcaster; i++ {
				bus.Broadcast(i)
			}
		}()
	}

	pubs.Wait()
	close(stop)
	churn.Wait()

	// The stable subscriber saw every broadcast exactly once.
	count := 0
	for {
		_, ok, err := stable.TryRecv()
		require.NoError(t, err)
		if !ok {
			break
		}
		count++
	}
	assert.Equal(t, broadcasters*perBroadcaster, count)

	// A final broadcast prunes whatever churn left behind; only the stable
	// subscriber remains afterwards.
	bus.Broadcast(-1)
	assert.Equal(t, 1, bus.Subscribers())
}

// Worker callbacks and raw subscribers share one bus and one delivery path.
func TestIntegration_MixedConsumption(t *testing.T) {
	t.Parallel()

	bus := broadcast.New[int]()
	defer bus.Close()

	rx := bus.Subscribe()

	var mu sync.Mutex
	var viaCallback []int
	sub := bus.Go(func(v int) {
		mu.Lock()
		viaCallback = append(viaCallback, v)
		mu.Unlock()
	})
	defer sub.Close()

	for i := 1; i <= 10; i++ {
		bus.Broadcast(i)
	}

	for i := 1; i <= 10; i++ {
		v, err := rx.Recv()
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(viaCallback) == 10
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	for i, v := range viaCallback {
		assert.Equal(t, i+1, v)
	}
}
