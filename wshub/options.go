package wshub

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Option configures a Hub.
type Option[T any] func(*Hub[T])

// WithReadBuffer sets the connection read buffer size in bytes.
func WithReadBuffer[T any](size int) Option[T] {
	return func(h *Hub[T]) {
		h.upgrader.ReadBufferSize = size
	}
}

// WithWriteBuffer sets the connection write buffer size in bytes.
func WithWriteBuffer[T any](size int) Option[T] {
	return func(h *Hub[T]) {
		h.upgrader.WriteBufferSize = size
	}
}

// WithHandshakeTimeout limits the duration of the upgrade handshake.
func WithHandshakeTimeout[T any](timeout time.Duration) Option[T] {
	return func(h *Hub[T]) {
		h.upgrader.HandshakeTimeout = timeout
	}
}

// WithOriginCheck installs a custom origin check on the upgrader.
func WithOriginCheck[T any](fn func(r *http.Request) bool) Option[T] {
	return func(h *Hub[T]) {
		h.upgrader.CheckOrigin = fn
	}
}

// WithAllowAnyOrigin disables origin checking entirely. Only use this when
// the endpoint is protected by other means.
func WithAllowAnyOrigin[T any]() Option[T] {
	return func(h *Hub[T]) {
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}
}

// WithSubprotocols advertises the supported subprotocols during the
// handshake.
func WithSubprotocols[T any](protocols ...string) Option[T] {
	return func(h *Hub[T]) {
		h.upgrader.Subprotocols = protocols
	}
}

// WithMarshaler overrides the JSON encoding of broadcast values.
func WithMarshaler[T any](fn func(T) ([]byte, error)) Option[T] {
	return func(h *Hub[T]) {
		if fn != nil {
			h.marshal = fn
		}
	}
}

// WithWriteTimeout bounds each frame write. Default is 10 seconds.
func WithWriteTimeout[T any](timeout time.Duration) Option[T] {
	return func(h *Hub[T]) {
		if timeout > 0 {
			h.writeTimeout = timeout
		}
	}
}

// WithPingInterval enables keepalive pings at the given interval.
// Disabled by default.
func WithPingInterval[T any](interval time.Duration) Option[T] {
	return func(h *Hub[T]) {
		if interval > 0 {
			h.pingInterval = interval
		}
	}
}

// WithOnConnect runs after a successful upgrade, before any value is
// streamed. Returning an error closes the connection.
func WithOnConnect[T any](fn func(*http.Request, *websocket.Conn) error) Option[T] {
	return func(h *Hub[T]) {
		h.onConnect = fn
	}
}

// WithOnDisconnect runs after the connection is closed.
func WithOnDisconnect[T any](fn func(*websocket.Conn)) Option[T] {
	return func(h *Hub[T]) {
		h.onDisconnect = fn
	}
}

// WithErrorHandler replaces the default error logging with a custom handler.
func WithErrorHandler[T any](fn func(error)) Option[T] {
	return func(h *Hub[T]) {
		h.onError = fn
	}
}

// WithLogger configures structured logging for hub operations.
// By default logging is discarded.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(h *Hub[T]) {
		if logger != nil {
			h.logger = logger
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
