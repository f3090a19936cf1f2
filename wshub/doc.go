// Package wshub fans a broadcast bus out to WebSocket clients.
//
// A Hub is a plain http.Handler: each request is upgraded to a WebSocket
// connection that receives every subsequent bus broadcast as one frame,
// JSON-encoded by default. Each connection holds its own bus subscriber, so
// delivery to one client never blocks another, and a client that goes away
// is pruned from the bus registry by a later broadcast.
//
// # Usage
//
//	type Notification struct {
//		Title string `json:"title"`
//		Body  string `json:"body"`
//	}
//
//	bus := broadcast.New[Notification]()
//	defer bus.Close()
//
//	hub := wshub.New(bus,
//		wshub.WithPingInterval[Notification](30*time.Second),
//		wshub.WithOnConnect[Notification](func(r *http.Request, conn *websocket.Conn) error {
//			return authorize(r)
//		}),
//	)
//
//	http.Handle("/ws/notifications", hub)
//
//	// Anywhere in the process:
//	bus.Broadcast(Notification{Title: "Deploy", Body: "v1.2 is live"})
//
// # Connection Lifecycle
//
// The hub serves a connection until the client disconnects, a write fails,
// or the bus is closed. On bus close the hub sends a going-away close frame
// after the client's remaining backlog has been flushed. Incoming frames
// from the client are read and discarded; the read loop exists only to
// detect disconnection promptly.
//
// # Encoding
//
// Values are marshaled with encoding/json unless WithMarshaler supplies a
// different encoder. A marshal failure skips that value for that connection
// and is reported through the error handler.
package wshub
