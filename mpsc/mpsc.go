package mpsc

import "sync"

// channel is the shared state behind a Sender/Receiver pair.
// A single mutex guards the queue; the condition variable wakes a
// receiver blocked in Recv when a value arrives or either side closes.
type channel[T any] struct {
	mu       sync.Mutex
	nonEmpty *sync.Cond
	buf      []T
	sendDone bool
	recvDone bool
}

// Sender is the producing end of an unbounded FIFO channel.
// It is safe for concurrent use by multiple goroutines.
type Sender[T any] struct {
	ch *channel[T]
}

// Receiver is the consuming end of an unbounded FIFO channel.
// It is intended for a single consumer; Close may be called from
// another goroutine to drop the receive side.
type Receiver[T any] struct {
	ch *channel[T]
}

// New creates an unbounded multi-producer/single-consumer channel and
// returns its two endpoints. Send never blocks; Recv blocks until a value
// is available or the channel terminates.
//
// Example:
//
//	tx, rx := mpsc.New[string]()
//	go func() {
//		_ = tx.Send("hello")
//		_ = tx.Close()
//	}()
//
//	for {
//		v, err := rx.Recv()
//		if err != nil {
//			break // end of stream
//		}
//		fmt.Println(v)
//	}
func New[T any]() (*Sender[T], *Receiver[T]) {
	ch := &channel[T]{}
	ch.nonEmpty = sync.NewCond(&ch.mu)
	return &Sender[T]{ch: ch}, &Receiver[T]{ch: ch}
}

// Send enqueues a value. It never blocks: the queue grows without bound
// when the receiver is slow. Returns ErrReceiverClosed if the receive side
// has been dropped, or ErrSenderClosed if Close was already called on this
// sender.
func (s *Sender[T]) Send(v T) error {
	ch := s.ch
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.recvDone {
		return ErrReceiverClosed
	}
	if ch.sendDone {
		return ErrSenderClosed
	}

	ch.buf = append(ch.buf, v)
	ch.nonEmpty.Signal()
	return nil
}

// Close marks the end of the stream. Values already enqueued remain
// deliverable; once the receiver drains them, Recv returns ErrSenderClosed.
// Closing an already-closed sender returns ErrSenderClosed.
func (s *Sender[T]) Close() error {
	ch := s.ch
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.sendDone {
		return ErrSenderClosed
	}

	ch.sendDone = true
	ch.nonEmpty.Broadcast()
	return nil
}

// Recv blocks until a value is available and returns it in FIFO order.
// It returns ErrSenderClosed after the send side closes and the backlog is
// drained, or ErrReceiverClosed if the receive side itself was closed.
func (r *Receiver[T]) Recv() (T, error) {
	var zero T
	ch := r.ch
	ch.mu.Lock()
	defer ch.mu.Unlock()

	for {
		if ch.recvDone {
			return zero, ErrReceiverClosed
		}
		if len(ch.buf) > 0 {
			return ch.pop(), nil
		}
		if ch.sendDone {
			return zero, ErrSenderClosed
		}
		ch.nonEmpty.Wait()
	}
}

// TryRecv is the non-blocking variant of Recv. The boolean reports whether
// a value was dequeued; when it is false and the error is nil, the channel
// is simply empty right now.
func (r *Receiver[T]) TryRecv() (T, bool, error) {
	var zero T
	ch := r.ch
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.recvDone {
		return zero, false, ErrReceiverClosed
	}
	if len(ch.buf) > 0 {
		return ch.pop(), true, nil
	}
	if ch.sendDone {
		return zero, false, ErrSenderClosed
	}
	return zero, false, nil
}

// Close permanently drops the receive side. Queued values are discarded,
// every subsequent Send fails with ErrReceiverClosed, and a Recv blocked in
// another goroutine wakes up with the same error. Closing an already-closed
// receiver returns ErrReceiverClosed.
func (r *Receiver[T]) Close() error {
	ch := r.ch
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.recvDone {
		return ErrReceiverClosed
	}

	ch.recvDone = true
	ch.buf = nil
	ch.nonEmpty.Broadcast()
	return nil
}

// pop removes and returns the head of the queue. Caller must hold mu.
func (ch *channel[T]) pop() T {
	var zero T
	v := ch.buf[0]
	ch.buf[0] = zero // release the reference for GC
	ch.buf = ch.buf[1:]
	if len(ch.buf) == 0 {
		ch.buf = nil // reset so the backing array can be collected
	}
	return v
}
