package broadcast

import (
	"io"
	"log/slog"
)

type options struct {
	logger *slog.Logger
}

// Option configures a Bus.
type Option func(*options)

// WithLogger configures structured logging for bus operations.
// By default logging is discarded. Pruning of disconnected subscribers is
// logged at debug level; callback panics in worker subscriptions at error
// level.
//
// Example:
//
//	bus := broadcast.New[Event](broadcast.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func defaultOptions() *options {
	return &options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
