// Package redisrelay bridges a process-local broadcast bus to a Redis
// Pub/Sub channel, extending fan-out across process boundaries.
//
// Each relay instance carries a unique origin identifier. Outbound values
// are wrapped in a JSON envelope tagged with that origin; inbound envelopes
// carrying the relay's own origin are dropped, so the Redis echo of a local
// publish never loops back into the local bus.
//
// # Delivery Model
//
//   - Relay.Broadcast(ctx, v): delivered to the local bus immediately and
//     published to Redis for every remote subscriber of the channel.
//   - Bus.Broadcast(v): stays process-local. Route values through the relay
//     when they must reach other processes.
//   - Remote envelopes received while Run is active are decoded and
//     rebroadcast on the local bus like any other value.
//
// Cross-process delivery inherits Redis Pub/Sub semantics: fire-and-forget,
// no replay for processes that were down at publish time.
//
// # Usage
//
//	bus := broadcast.New[OrderEvent]()
//	defer bus.Close()
//
//	cfg, err := redisrelay.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := redisrelay.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	relay, err := redisrelay.New(client, bus, redisrelay.WithChannel(cfg.Channel))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(relay.Run(ctx))
//
//	// Local subscribers now see broadcasts from every process.
//	rx := bus.Subscribe()
//
//	// Publish to the whole fleet.
//	if err := relay.Broadcast(ctx, OrderEvent{ID: "123"}); err != nil {
//		log.Println("publish failed:", err)
//	}
//
// # Configuration
//
// Configuration is environment-driven via the Config struct:
//
//	type Config struct {
//		ConnectionURL  string        `env:"BROADCAST_REDIS_URL" envDefault:"redis://localhost:6379/0"`
//		Channel        string        `env:"BROADCAST_REDIS_CHANNEL" envDefault:"broadcast"`
//		ConnectTimeout time.Duration `env:"BROADCAST_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
//	}
//
// Connect validates the URL, establishes the client, and verifies
// connectivity with a ping. Healthcheck returns a probe function for
// readiness endpoints.
//
// # Payload Constraints
//
// T must round-trip through encoding/json: the relay marshals outbound
// values and unmarshals inbound payloads into a zero T. Types relying on
// unexported fields or non-JSON representations will not survive the trip.
package redisrelay
