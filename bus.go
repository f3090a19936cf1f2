package broadcast

import (
	"log/slog"

	"github.com/dmitrymomot/broadcast/mpsc"
)

// Bus fans every broadcast value out to all currently registered
// subscribers. Each subscriber owns an unbounded queue, so a slow consumer
// accumulates backlog instead of blocking the publisher or its peers.
//
// A *Bus is a shared handle: every copy of the pointer observes the same
// subscriber set and the same broadcasts. It is safe for concurrent use.
//
// Example:
//
//	bus := broadcast.New[string]()
//	defer bus.Close()
//
//	rx1 := bus.Subscribe()
//	rx2 := bus.Subscribe()
//
//	bus.Broadcast("Hello")
//	// rx1.Recv() and rx2.Recv() each yield "Hello"
type Bus[T any] struct {
	registry registry[T]
	logger   *slog.Logger
}

// New creates an empty bus. Values of type T are delivered by value to each
// subscriber independently; when T contains reference types (slices, maps,
// pointers), all subscribers share the referenced data.
func New[T any](opts ...Option) *Bus[T] {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Bus[T]{
		logger: cfg.logger,
	}
}

// Broadcast delivers msg to every live subscriber in the order they
// subscribed. It never fails and never blocks on a slow consumer.
// Subscribers found disconnected are pruned from the registry after the
// delivery pass. Broadcasting on a closed bus is a no-op.
func (b *Bus[T]) Broadcast(msg T) {
	dead := b.registry.broadcast(msg)
	if len(dead) == 0 {
		return
	}

	b.registry.prune(dead)
	b.logger.Debug("pruned disconnected subscribers",
		slog.Int("count", len(dead)),
		slog.Any("ids", dead))
}

// Subscribe registers a new subscriber and returns its receive-side handle.
// The caller is responsible for draining it: an unconsumed subscriber grows
// its own backlog without affecting the publisher or other subscribers.
// Close the handle when done so the registry can prune it.
//
// On a closed bus the returned subscriber is already at end of stream.
func (b *Bus[T]) Subscribe() *Subscriber[T] {
	tx, rx := mpsc.New[T]()

	id, ok := b.registry.add(tx)
	if !ok {
		// Bus already closed: terminate the stream before handing it out.
		_ = tx.Close()
	}

	return &Subscriber[T]{id: id, rx: rx}
}

// SubscribeFunc registers fn as a subscriber and invokes it on the calling
// goroutine for every value broadcast from this point on, in broadcast
// order. It does not return until the bus is closed; callers that want a
// background worker instead should use Go.
func (b *Bus[T]) SubscribeFunc(fn func(T)) {
	sub := b.Subscribe()
	defer sub.Close()

	for {
		msg, err := sub.Recv()
		if err != nil {
			return
		}
		fn(msg)
	}
}

// Subscribers returns the number of live registry entries. Subscribers that
// closed their handle still count until a later broadcast discovers and
// prunes them.
func (b *Bus[T]) Subscribers() int {
	return b.registry.size()
}

// Close shuts the bus down: every subscriber drains its remaining backlog
// and then observes end of stream, which also terminates SubscribeFunc loops
// and worker subscriptions. Further broadcasts are dropped. Returns
// ErrBusClosed if the bus is already closed.
func (b *Bus[T]) Close() error {
	if !b.registry.close() {
		return ErrBusClosed
	}
	b.logger.Debug("broadcast bus closed")
	return nil
}
