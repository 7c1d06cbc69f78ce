package task

import (
	"context"
	"sync"

	"github.com/go-drift/viewstate/pkg/log"
	"github.com/go-drift/viewstate/pkg/notify"
)

// Producer computes one value. It receives the context passed to Run;
// the controller never cancels it, but a producer may honor the caller's
// deadline itself.
type Producer[T any] func(ctx context.Context) (T, error)

// Controller runs a single producer and tracks its lifecycle.
//
// Create one with [NewController], configure the optional hook fields
// before the first Run, and subscribe with AddListener to re-render on
// every transition. All accessors are safe to call from any goroutine,
// including from listener callbacks.
//
// Two overlapping Run calls on the same controller race: the last slot
// write wins and there is no in-flight de-duplication.
type Controller[T any] struct {
	// OnData is invoked after every successful run with the produced
	// value, before listeners are notified. Optional.
	OnData func(T)

	// OnError is invoked after every failed run with the recorded
	// *OperationError, before listeners are notified. Optional.
	OnError func(error)

	// Logger receives lifecycle logs. Defaults to log.Noop.
	Logger log.Logger

	producer Producer[T]
	channel  *notify.Channel

	mu   sync.Mutex
	slot slot[T]
}

// NewController creates a controller for the given producer.
// The producer must be non-nil.
func NewController[T any](producer Producer[T]) *Controller[T] {
	return &Controller[T]{
		producer: producer,
		channel:  notify.NewChannel(),
		Logger:   log.Noop,
	}
}

// Run invokes the producer and blocks until it resolves.
//
// The slot transitions to Running and listeners are notified before the
// producer starts, so subscribers observe Busy() == true for the whole
// invocation. On success the value is stored, OnData fires, and Run
// returns nil. On failure (including a producer panic) the failure is
// stored as a *OperationError, OnError fires, and Run returns that
// error. Busy is false on every return path.
func (c *Controller[T]) Run(ctx context.Context) error {
	c.mu.Lock()
	c.slot.markRunning()
	c.mu.Unlock()
	c.log().Debugf("run started")
	c.channel.NotifyChanged()

	v, err, panicked := invokeProducer(ctx, c.producer)
	if err != nil {
		opErr := operationError("task.Controller.Run", "", err, panicked)
		c.mu.Lock()
		c.slot.markFailed(opErr)
		c.mu.Unlock()
		if c.OnError != nil {
			c.OnError(opErr)
		}
		c.log().Errorf("run failed: %v", err)
		c.channel.NotifyError(opErr)
		return opErr
	}

	c.mu.Lock()
	c.slot.markSucceeded(v)
	c.mu.Unlock()
	if c.OnData != nil {
		c.OnData(v)
	}
	c.log().Debugf("run succeeded")
	c.channel.NotifyChanged()
	return nil
}

// NotifySourceChanged marks the controller's backing source as stale.
//
// It does not run anything and does not notify listeners; the next Run
// clears the mark and re-invokes the producer against whatever external
// state it reads.
func (c *Controller[T]) NotifySourceChanged() {
	c.mu.Lock()
	c.slot.stale = true
	c.mu.Unlock()
}

// SourceStale reports whether NotifySourceChanged was called since the
// last Run started.
func (c *Controller[T]) SourceStale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slot.stale
}

// Status returns the operation's lifecycle state.
func (c *Controller[T]) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slot.status
}

// Data returns the last successfully produced value, or the zero value
// if the operation never succeeded or has failed since. While a re-run
// is in flight it still returns the previous cycle's value.
func (c *Controller[T]) Data() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slot.data
}

// Err returns the recorded failure, or nil if the last completed run
// succeeded.
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slot.err
}

// Busy reports whether a producer invocation is in flight.
func (c *Controller[T]) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slot.busy()
}

// HasError reports whether the operation is in the failed state.
func (c *Controller[T]) HasError() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slot.status == StatusFailed
}

// Snapshot returns a point-in-time view of the operation.
func (c *Controller[T]) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slot.snapshot()
}

// AddListener registers a callback fired on every state transition.
// Returns an unsubscribe function.
func (c *Controller[T]) AddListener(fn func()) func() {
	return c.channel.AddListener(fn)
}

// AddErrorListener registers a callback fired on every failed run.
// Returns an unsubscribe function.
func (c *Controller[T]) AddErrorListener(fn func(error)) func() {
	return c.channel.AddErrorListener(fn)
}

// Revision returns the number of notifications delivered so far.
func (c *Controller[T]) Revision() uint64 {
	return c.channel.Revision()
}

func (c *Controller[T]) log() log.Logger {
	if c.Logger == nil {
		return log.Noop
	}
	return c.Logger
}

// invokeProducer runs p, converting a panic into a failure so a
// misbehaving producer can never take the controller down.
func invokeProducer[T any](ctx context.Context, p Producer[T]) (v T, err error, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v = zero
			err = panicToError(r)
			panicked = true
		}
	}()
	v, err = p(ctx)
	return v, err, false
}
