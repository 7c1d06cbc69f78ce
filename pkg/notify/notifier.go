package notify

import "sync"

// Notifier is a synchronous change-notification fan-out.
//
// Listeners are invoked in subscription order on every call to Notify.
// Notifier is thread-safe; callbacks are invoked outside the internal lock
// so listeners may read back into whatever state triggered the
// notification without deadlocking.
type Notifier struct {
	mu       sync.Mutex
	entries  []listenerEntry
	nextID   int
	revision uint64
}

type listenerEntry struct {
	id int
	fn func()
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// AddListener registers a callback that fires on every notification.
// Returns an unsubscribe function. Unsubscribing more than once is a
// no-op, as is passing a nil listener.
func (n *Notifier) AddListener(fn func()) func() {
	if fn == nil {
		return func() {}
	}

	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.entries = append(n.entries, listenerEntry{id: id, fn: fn})
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		for i, e := range n.entries {
			if e.id == id {
				n.entries = append(n.entries[:i], n.entries[i+1:]...)
				break
			}
		}
		n.mu.Unlock()
	}
}

// Notify bumps the revision and synchronously invokes every listener
// subscribed at call time, in subscription order.
//
// Notify is re-entrant safe: a listener may subscribe, unsubscribe, or
// call Notify again. Listeners added during the pass do not fire until
// the next pass; a listener removed mid-pass by an earlier listener is
// skipped.
func (n *Notifier) Notify() {
	n.mu.Lock()
	n.revision++
	ids := make([]int, len(n.entries))
	for i, e := range n.entries {
		ids[i] = e.id
	}
	n.mu.Unlock()

	for _, id := range ids {
		// Re-resolve under the lock so removals during this pass win.
		n.mu.Lock()
		var fn func()
		for _, e := range n.entries {
			if e.id == id {
				fn = e.fn
				break
			}
		}
		n.mu.Unlock()

		if fn != nil {
			fn()
		}
	}
}

// Revision returns the number of notifications delivered so far.
func (n *Notifier) Revision() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.revision
}

// ListenerCount returns the number of currently subscribed listeners.
func (n *Notifier) ListenerCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.entries)
}
