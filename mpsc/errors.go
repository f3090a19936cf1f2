package mpsc

import "errors"

var (
	// ErrSenderClosed is returned by Recv once the send side has been closed
	// and the backlog has been fully drained. It is the normal end-of-stream
	// signal, not an exceptional failure.
	ErrSenderClosed = errors.New("sender is closed")

	// ErrReceiverClosed is returned by Send once the receive side has been
	// permanently dropped. The condition never clears: every later Send on
	// the same channel fails the same way.
	ErrReceiverClosed = errors.New("receiver is closed")
)
