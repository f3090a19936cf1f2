// Package mpsc provides an unbounded multi-producer/single-consumer FIFO
// channel with explicit disconnect signaling on both endpoints.
//
// Native Go channels are bounded: a send on a full channel blocks, and there
// is no way for a sender to learn that the reader is permanently gone short
// of a panic on send-to-closed. This package fills both gaps for fan-out use
// cases where the producer must never block and a slow consumer accumulates
// backlog instead of stalling unrelated work.
//
// # Semantics
//
//   - Send never blocks; memory is the only limit on queue growth.
//   - Recv blocks until a value is available, preserving FIFO order.
//   - Closing the Sender ends the stream: the Receiver drains the remaining
//     backlog, then Recv returns ErrSenderClosed.
//   - Closing the Receiver drops the consumer permanently: queued values are
//     discarded and every later Send returns ErrReceiverClosed.
//
// Both close signals are permanent and idempotent-safe (a second Close
// reports the already-closed state via the corresponding sentinel error).
//
// # Usage
//
//	tx, rx := mpsc.New[int]()
//
//	// Any number of producers.
//	go func() {
//		for i := 1; i < 100; i++ {
//			if err := tx.Send(i); err != nil {
//				return // receiver is gone
//			}
//		}
//		_ = tx.Close()
//	}()
//
//	// Single consumer.
//	for {
//		v, err := rx.Recv()
//		if err != nil {
//			break // normal end of stream
//		}
//		process(v)
//	}
//
// # Thread Safety
//
// A Sender may be shared freely across goroutines. A Receiver expects a
// single consuming goroutine, but Receiver.Close is safe to call from any
// goroutine and wakes a blocked Recv.
package mpsc
