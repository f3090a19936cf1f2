// Package broadcast provides a process-local broadcast bus: one publisher
// path fans values out to a dynamically changing set of subscribers, each of
// which receives every value independently and in order.
//
// Unlike typical fan-out helpers that drop messages when a consumer's buffer
// fills up, this bus is unbounded: a slow subscriber accumulates backlog on
// its own queue rather than losing values or stalling the publisher. Choose
// it when every subscriber must see every value; choose a bounded/dropping
// design when memory matters more than completeness.
//
// # Architecture
//
// The bus keeps an insertion-ordered registry of send handles behind a
// read-write mutex. Broadcasts take shared access and run concurrently with
// each other; subscribing and pruning take exclusive access. A broadcast
// that finds a subscriber disconnected records its identifier and prunes the
// registry in a second, exclusive pass, so the common all-subscribers-live
// case stays read-only.
//
// Subscriber identifiers come from a monotonic counter and are never reused.
//
// # Usage
//
// Receive-side consumption:
//
//	bus := broadcast.New[string]()
//	defer bus.Close()
//
//	rx1 := bus.Subscribe()
//	rx2 := bus.Subscribe()
//
//	bus.Broadcast("Hello")
//
//	v, _ := rx1.Recv() // "Hello"
//	v, _ = rx2.Recv()  // "Hello"
//
// Callback-style consumption on a background worker:
//
//	sub := bus.Go(func(msg string) {
//		fmt.Println("got:", msg)
//	})
//	defer sub.Close() // stops the worker and waits for it
//
//	bus.Broadcast("Hello")
//
// Callback-style consumption on the caller's own goroutine (blocks until the
// bus is closed):
//
//	bus.SubscribeFunc(func(msg string) {
//		fmt.Println("got:", msg)
//	})
//
// # Delivery Guarantees
//
//   - Every subscriber registered before a broadcast receives that value.
//   - Per-subscriber order is FIFO; within one Broadcast call, delivery
//     follows subscription order.
//   - Concurrent Broadcast calls carry no ordering relative to each other,
//     but each subscriber still observes them in a single per-subscriber
//     order.
//   - Values are delivered by Go value copy; reference types inside T share
//     their backing data across subscribers.
//
// # Lifecycle
//
// Closing a Subscriber is lazy: the registry discovers the disconnect on a
// later broadcast and prunes the entry then. Closing the Bus terminates all
// streams; subscribers drain their remaining backlog and then observe
// ErrBusClosed as a normal end-of-stream signal.
//
// # Related Packages
//
//   - mpsc: the unbounded channel primitive backing each subscription
//   - redisrelay: bridges a bus across processes via Redis Pub/Sub
//   - wshub: fans a bus out to WebSocket clients
//
// # Thread Safety
//
// All types in this package are safe for concurrent use across multiple
// goroutines. The registry uses a read-write mutex to optimize for
// read-heavy broadcast operations while handling less frequent subscription
// changes.
package broadcast
