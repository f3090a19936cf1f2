package broadcast

import "errors"

var (
	// ErrBusClosed is returned when operating on a closed bus, and by
	// Subscriber.Recv as the end-of-stream signal once the bus has been
	// closed and the subscriber's backlog is drained.
	ErrBusClosed = errors.New("broadcast bus is closed")

	// ErrSubscriberClosed is returned by receive operations on a subscriber
	// that has already been closed.
	ErrSubscriberClosed = errors.New("subscriber is closed")
)
