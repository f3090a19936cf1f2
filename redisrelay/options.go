package redisrelay

import (
	"io"
	"log/slog"
)

type options struct {
	channel string
	origin  string
	logger  *slog.Logger
}

// Option configures a Relay.
type Option func(*options)

// WithChannel sets the Redis Pub/Sub channel name. Default is "broadcast".
func WithChannel(channel string) Option {
	return func(o *options) {
		if channel != "" {
			o.channel = channel
		}
	}
}

// WithOrigin overrides the relay's origin identifier. By default a random
// UUID is generated per relay instance. Two relays sharing an origin will
// drop each other's publishes, so only override this when that is the
// intent (e.g. blue/green instances of the same logical publisher).
func WithOrigin(origin string) Option {
	return func(o *options) {
		if origin != "" {
			o.origin = origin
		}
	}
}

// WithLogger configures structured logging for relay operations.
// By default logging is discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func defaultOptions() *options {
	return &options{
		channel: "broadcast",
		origin:  defaultOrigin(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
