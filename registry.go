package broadcast

import (
	"sync"

	"github.com/dmitrymomot/broadcast/mpsc"
)

// entry pairs a subscriber identifier with the send side of its channel.
type entry[T any] struct {
	id uint64
	tx *mpsc.Sender[T]
}

// registry is the authoritative, insertion-ordered set of live send handles.
//
// A single RWMutex covers all state: broadcasts take read access and run
// concurrently with each other; adding a subscriber and pruning dead entries
// take write access and are mutually exclusive with everything else.
// Identifiers come from a monotonic counter and are never reused, so a sorted
// slice doubles as both the insertion order and the lookup structure.
type registry[T any] struct {
	mu      sync.RWMutex
	entries []entry[T]
	nextID  uint64
	closed  bool
}

// add registers a send handle under a fresh identifier and reports whether
// the registry is still open. On a closed registry nothing is stored and the
// returned identifier is zero.
func (r *registry[T]) add(tx *mpsc.Sender[T]) (uint64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, false
	}

	r.nextID++
	id := r.nextID
	r.entries = append(r.entries, entry[T]{id: id, tx: tx})
	return id, true
}

// broadcast pushes msg to every live entry in insertion order and returns
// the identifiers whose receive side turned out to be gone. It only takes
// read access; removal happens in a separate prune pass under write access,
// since upgrading a held read lock to a write lock would deadlock.
func (r *registry[T]) broadcast(msg T) []uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var dead []uint64
	for _, e := range r.entries {
		if err := e.tx.Send(msg); err != nil {
			dead = append(dead, e.id)
		}
	}
	return dead
}

// prune removes exactly the named identifiers. Absent identifiers are
// ignored, so racing prune passes from concurrent broadcasts are harmless.
func (r *registry[T]) prune(ids []uint64) {
	if len(ids) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	condemned := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		condemned[id] = struct{}{}
	}

	kept := r.entries[:0]
	for _, e := range r.entries {
		if _, ok := condemned[e.id]; ok {
			continue
		}
		kept = append(kept, e)
	}

	// Zero the tail so dropped senders become collectable.
	for i := len(kept); i < len(r.entries); i++ {
		r.entries[i] = entry[T]{}
	}
	r.entries = kept
}

// size returns the number of live entries.
func (r *registry[T]) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// close marks the registry closed and closes every retained send handle so
// subscribers drain their backlog and then observe end-of-stream. Reports
// whether this call performed the close.
func (r *registry[T]) close() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false
	}

	r.closed = true
	for _, e := range r.entries {
		_ = e.tx.Close()
	}
	r.entries = nil
	return true
}
