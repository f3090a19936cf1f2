package wshub

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/broadcast"
)

const defaultWriteTimeout = 10 * time.Second

// Hub is an http.Handler that upgrades each request to a WebSocket
// connection and streams every bus broadcast to it. Each connection gets
// its own bus subscriber, so a slow client accumulates its own backlog
// without affecting other clients or the publisher.
type Hub[T any] struct {
	bus          *broadcast.Bus[T]
	upgrader     *websocket.Upgrader
	marshal      func(T) ([]byte, error)
	writeTimeout time.Duration
	pingInterval time.Duration
	onConnect    func(*http.Request, *websocket.Conn) error
	onDisconnect func(*websocket.Conn)
	onError      func(error)
	logger       *slog.Logger
}

// New creates a hub serving the given bus. Values are marshaled to JSON
// unless WithMarshaler overrides the encoding.
//
// Example:
//
//	bus := broadcast.New[Notification]()
//	hub := wshub.New(bus, wshub.WithAllowAnyOrigin())
//	http.Handle("/ws/notifications", hub)
func New[T any](bus *broadcast.Bus[T], opts ...Option[T]) *Hub[T] {
	h := &Hub[T]{
		bus: bus,
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		marshal:      func(v T) ([]byte, error) { return json.Marshal(v) },
		writeTimeout: defaultWriteTimeout,
		logger:       discardLogger(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// ServeHTTP implements http.Handler. The connection is served until the
// client disconnects or the bus closes; either way the connection's
// subscriber is closed so a later broadcast prunes it from the registry.
func (h *Hub[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.handleError(err)
		return
	}
	defer func() {
		_ = conn.Close()
		if h.onDisconnect != nil {
			h.onDisconnect(conn)
		}
	}()

	if h.onConnect != nil {
		if err := h.onConnect(r, conn); err != nil {
			h.handleError(err)
			return
		}
	}

	sub := h.bus.Subscribe()
	defer sub.Close()

	h.logger.Debug("websocket client subscribed",
		slog.Uint64("subscriber_id", sub.ID()),
		slog.String("remote_addr", r.RemoteAddr))

	// The read loop exists to detect the client going away; closing the
	// subscriber wakes the write loop blocked in Recv.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				_ = sub.Close()
				return
			}
		}
	}()

	if h.pingInterval > 0 {
		stopPing := make(chan struct{})
		defer close(stopPing)
		go h.keepalive(conn, stopPing)
	}

	for {
		msg, err := sub.Recv()
		if err != nil {
			if errors.Is(err, broadcast.ErrBusClosed) {
				deadline := time.Now().Add(h.writeTimeout)
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "bus closed"),
					deadline)
			}
			return
		}

		data, err := h.marshal(msg)
		if err != nil {
			h.handleError(err)
			continue
		}

		_ = conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.handleError(err)
			return
		}
	}
}

// keepalive sends periodic pings until the connection is done.
// WriteControl is safe to call concurrently with the write loop.
func (h *Hub[T]) keepalive(conn *websocket.Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			deadline := time.Now().Add(h.writeTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

func (h *Hub[T]) handleError(err error) {
	if h.onError != nil {
		h.onError(err)
		return
	}
	h.logger.Error("websocket hub error", slog.String("error", err.Error()))
}
