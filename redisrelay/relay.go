package redisrelay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/broadcast"
)

// Relay bridges a process-local broadcast bus to a Redis Pub/Sub channel so
// multiple processes observe the same broadcasts.
//
// Values published through Relay.Broadcast are delivered to the local bus
// immediately and to every remote process subscribed to the same channel.
// Values broadcast directly on the bus stay process-local; route publishes
// through the relay when they should cross process boundaries.
//
// T must marshal to and from JSON.
type Relay[T any] struct {
	bus     *broadcast.Bus[T]
	client  redis.UniversalClient
	channel string
	origin  string
	logger  *slog.Logger
}

// New creates a relay between client's Pub/Sub and the given local bus.
// The relay is inert until Run is started.
//
// Example:
//
//	relay, err := redisrelay.New(client, bus, redisrelay.WithChannel("orders"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(relay.Run(ctx))
func New[T any](client redis.UniversalClient, bus *broadcast.Bus[T], opts ...Option) (*Relay[T], error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if bus == nil {
		return nil, ErrNilBus
	}

	cfg := defaultOptions()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.channel == "" {
		return nil, ErrEmptyChannel
	}

	return &Relay[T]{
		bus:     bus,
		client:  client,
		channel: cfg.channel,
		origin:  cfg.origin,
		logger:  cfg.logger,
	}, nil
}

// Origin returns this relay's origin identifier. Envelopes carrying it are
// dropped on receipt so the relay never re-delivers its own publishes.
func (r *Relay[T]) Origin() string {
	return r.origin
}

// Broadcast delivers msg to the local bus and publishes it to the Redis
// channel for remote processes. Local delivery is unconditional; if the
// Redis publish fails, the error is returned wrapped in ErrPublishFailed
// and the local delivery stands.
func (r *Relay[T]) Broadcast(ctx context.Context, msg T) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	r.bus.Broadcast(msg)

	data, err := json.Marshal(newEnvelope(r.origin, payload))
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		return errors.Join(ErrPublishFailed, err)
	}

	r.logger.DebugContext(ctx, "published broadcast to redis",
		slog.String("channel", r.channel),
		slog.Int("payload_size", len(payload)))
	return nil
}

// Run subscribes to the Redis channel and rebroadcasts every remote
// envelope on the local bus. It blocks until the context is cancelled or
// the Pub/Sub connection is closed; malformed envelopes are logged and
// skipped. Returns a function suitable for errgroup.Group.Go.
func (r *Relay[T]) Run(ctx context.Context) func() error {
	return func() error {
		return r.listen(ctx)
	}
}

// Listen is the blocking form of Run for callers that manage their own
// goroutines.
func (r *Relay[T]) Listen(ctx context.Context) error {
	return r.listen(ctx)
}

func (r *Relay[T]) listen(ctx context.Context) error {
	pubsub := r.client.Subscribe(ctx, r.channel)
	defer pubsub.Close()

	// Force the subscription handshake so broadcasts published after Run
	// starts are not missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to redis channel: %w", err)
	}

	r.logger.InfoContext(ctx, "redis relay listening",
		slog.String("channel", r.channel),
		slog.String("origin", r.origin))

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("redis relay stopping")
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				r.logger.Info("redis pubsub channel closed")
				return nil
			}
			if err := r.dispatch([]byte(m.Payload)); err != nil {
				r.logger.ErrorContext(ctx, "failed to dispatch remote broadcast",
					slog.String("channel", r.channel),
					slog.String("error", err.Error()))
			}
		}
	}
}

// dispatch decodes one envelope and rebroadcasts its payload locally,
// dropping envelopes this relay published itself.
func (r *Relay[T]) dispatch(data []byte) error {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("failed to unmarshal envelope: %w", err)
	}

	if env.Origin == r.origin {
		return nil
	}

	var msg T
	if err := json.Unmarshal(env.Payload, &msg); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	r.bus.Broadcast(msg)
	return nil
}

// defaultOrigin allocates a unique origin identifier per relay instance.
func defaultOrigin() string {
	return uuid.New().String()
}
