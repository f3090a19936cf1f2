package broadcast

import (
	"log/slog"
	"sync"
)

// Subscription is the lifecycle handle of a worker-driven callback
// subscriber started with Bus.Go. The callback keeps firing for as long as
// the handle is held; Close stops the worker and waits for it to terminate.
type Subscription struct {
	stop     func()
	done     chan struct{}
	stopOnce sync.Once
}

// Go registers fn as a subscriber and spawns a worker goroutine that invokes
// it for every value broadcast from this point on, in broadcast order. The
// returned handle must be kept alive for as long as the callback should keep
// firing and closed when it should stop.
//
// A panic in fn is recovered and logged; it terminates this worker only,
// leaving the bus and other subscribers untouched.
//
// Example:
//
//	sub := bus.Go(func(evt Event) {
//		process(evt)
//	})
//	defer sub.Close()
func (b *Bus[T]) Go(fn func(T)) *Subscription {
	rx := b.Subscribe()

	s := &Subscription{
		stop: func() { _ = rx.Close() },
		done: make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("subscriber callback panicked",
					slog.Uint64("subscriber_id", rx.ID()),
					slog.Any("panic", r))
				_ = rx.Close()
			}
		}()

		for {
			msg, err := rx.Recv()
			if err != nil {
				return
			}
			fn(msg)
		}
	}()

	return s
}

// Close signals the worker to stop and blocks until it has fully
// terminated. A callback invocation already in flight completes before
// Close returns; no invocation starts afterwards. Close is idempotent and
// always returns nil.
func (s *Subscription) Close() error {
	s.stopOnce.Do(s.stop)
	<-s.done
	return nil
}

// Done returns a channel that is closed once the worker has terminated,
// whether through Close, bus shutdown, or a callback panic.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}
