package notify

import "sync"

// Channel delivers "state changed" and "error occurred" signals to
// subscribers, decoupled from the fields of whatever owns it.
//
// An error notification is also a change: NotifyError fires the error
// listeners first, then the change listeners, and bumps the shared
// revision once.
type Channel struct {
	changed Notifier

	mu     sync.Mutex
	errs   []errorEntry
	nextID int
}

type errorEntry struct {
	id int
	fn func(error)
}

// NewChannel creates a channel with no subscribers.
func NewChannel() *Channel {
	return &Channel{}
}

// AddListener registers a callback fired on every state change.
// Returns an unsubscribe function.
func (c *Channel) AddListener(fn func()) func() {
	return c.changed.AddListener(fn)
}

// AddErrorListener registers a callback fired on every error
// notification, before the change listeners. Returns an unsubscribe
// function; nil listeners and repeated unsubscribes are no-ops.
func (c *Channel) AddErrorListener(fn func(error)) func() {
	if fn == nil {
		return func() {}
	}

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.errs = append(c.errs, errorEntry{id: id, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		for i, e := range c.errs {
			if e.id == id {
				c.errs = append(c.errs[:i], c.errs[i+1:]...)
				break
			}
		}
		c.mu.Unlock()
	}
}

// NotifyChanged delivers a state-changed signal to all change listeners.
func (c *Channel) NotifyChanged() {
	c.changed.Notify()
}

// NotifyError delivers err to all error listeners in subscription order,
// then delivers a state-changed signal.
func (c *Channel) NotifyError(err error) {
	c.mu.Lock()
	listeners := make([]func(error), 0, len(c.errs))
	for _, e := range c.errs {
		listeners = append(listeners, e.fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(err)
	}
	c.changed.Notify()
}

// Revision returns the number of change notifications delivered so far.
// Error notifications count once each.
func (c *Channel) Revision() uint64 {
	return c.changed.Revision()
}
