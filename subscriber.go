package broadcast

import (
	"errors"

	"github.com/dmitrymomot/broadcast/mpsc"
)

// Subscriber is the receive-side handle of one bus subscription. Values
// arrive in broadcast order; the queue behind it is unbounded, so Recv never
// loses values no matter how slowly they are consumed.
type Subscriber[T any] struct {
	id uint64
	rx *mpsc.Receiver[T]
}

// ID returns the subscriber's registry identifier. Identifiers are assigned
// from a strictly increasing counter and never reused for the lifetime of
// the bus. A subscriber obtained from an already-closed bus has ID zero.
func (s *Subscriber[T]) ID() uint64 {
	return s.id
}

// Recv blocks until the next broadcast value and returns it. After the bus
// is closed and the backlog is drained it returns ErrBusClosed; after the
// subscriber itself is closed it returns ErrSubscriberClosed. Both are
// normal end-of-stream signals.
func (s *Subscriber[T]) Recv() (T, error) {
	v, err := s.rx.Recv()
	if err != nil {
		return v, s.translate(err)
	}
	return v, nil
}

// TryRecv is the non-blocking variant of Recv. The boolean reports whether
// a value was dequeued; false with a nil error means no value is queued
// right now.
func (s *Subscriber[T]) TryRecv() (T, bool, error) {
	v, ok, err := s.rx.TryRecv()
	if err != nil {
		return v, ok, s.translate(err)
	}
	return v, ok, nil
}

// Close drops the subscription. The registry still holds the paired send
// handle; a later broadcast notices the disconnect and prunes the entry, so
// removal is lazy rather than immediate. Closing twice returns
// ErrSubscriberClosed.
func (s *Subscriber[T]) Close() error {
	if err := s.rx.Close(); err != nil {
		return ErrSubscriberClosed
	}
	return nil
}

// translate maps channel-level disconnect errors onto the bus vocabulary.
func (s *Subscriber[T]) translate(err error) error {
	switch {
	case errors.Is(err, mpsc.ErrSenderClosed):
		return ErrBusClosed
	case errors.Is(err, mpsc.ErrReceiverClosed):
		return ErrSubscriberClosed
	default:
		return err
	}
}
