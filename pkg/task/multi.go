package task

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/go-drift/viewstate/pkg/log"
	"github.com/go-drift/viewstate/pkg/notify"
)

// MultiController runs a fixed registry of keyed producers concurrently
// and tracks each key's lifecycle in isolation.
//
// The registry is set at construction and never changes; slots are
// created once per key and mutated in place across runs. One key's
// failure never cancels, delays, or corrupts a sibling key: producers
// for different keys never contend on a lock, and RunAll always waits
// for the slowest producer regardless of earlier failures.
//
// As with [Controller], overlapping RunAll calls race per slot: the last
// write wins and there is no in-flight de-duplication.
type MultiController struct {
	// OnData is invoked after each successful key with the produced
	// value, before listeners are notified. Optional. It may be called
	// from multiple goroutines concurrently (one per key).
	OnData func(key string, value any)

	// OnError is invoked after each failed key with the recorded
	// *OperationError, before listeners are notified. Optional. Same
	// concurrency caveat as OnData.
	OnError func(key string, err error)

	// Logger receives lifecycle logs. Defaults to log.Noop.
	Logger log.Logger

	producers map[string]Producer[any]
	keys      []string
	channel   *notify.Channel
	slots     map[string]*slotBox
}

// slotBox pairs a slot with its own lock so mutations and reads for
// different keys never contend.
type slotBox struct {
	mu   sync.Mutex
	slot slot[any]
}

// NewMultiController creates a controller for the given keyed producers.
// The registry is copied; later changes to the map are not observed.
func NewMultiController(producers map[string]Producer[any]) *MultiController {
	m := &MultiController{
		producers: make(map[string]Producer[any], len(producers)),
		keys:      make([]string, 0, len(producers)),
		channel:   notify.NewChannel(),
		slots:     make(map[string]*slotBox, len(producers)),
		Logger:    log.Noop,
	}
	for key, p := range producers {
		m.producers[key] = p
		m.keys = append(m.keys, key)
		m.slots[key] = &slotBox{}
	}
	sort.Strings(m.keys)
	return m
}

// RunAll invokes every producer concurrently and blocks until the last
// one resolves.
//
// Every key transitions to Running before any producer starts, covered
// by a single batch notification, so Busy(key) is true for the whole
// registry before the first completion. Keys then resolve
// independently, each with its own notification. RunAll returns nil if
// every key succeeded; otherwise it returns the per-key failures joined
// in key order. The error is also readable per key afterwards via
// Failure and HasError.
func (m *MultiController) RunAll(ctx context.Context) error {
	for _, key := range m.keys {
		b := m.slots[key]
		b.mu.Lock()
		b.slot.markRunning()
		b.mu.Unlock()
	}
	m.log().Debugf("run started for %d tasks", len(m.keys))
	m.channel.NotifyChanged()

	var g errgroup.Group
	for _, key := range m.keys {
		key := key
		g.Go(func() error {
			return m.runOne(ctx, key)
		})
	}

	if err := g.Wait(); err != nil {
		// At least one key failed. Report every failure in key order
		// rather than whichever one Wait happened to keep.
		var errs []error
		for _, key := range m.keys {
			b := m.slots[key]
			b.mu.Lock()
			if b.slot.status == StatusFailed && b.slot.err != nil {
				errs = append(errs, b.slot.err)
			}
			b.mu.Unlock()
		}
		return errors.Join(errs...)
	}
	return nil
}

// runOne invokes a single key's producer and completes its slot.
// Failures are contained to the key's slot.
func (m *MultiController) runOne(ctx context.Context, key string) error {
	v, err, panicked := invokeProducer(ctx, m.producers[key])
	b := m.slots[key]

	if err != nil {
		opErr := operationError("task.MultiController.RunAll", key, err, panicked)
		b.mu.Lock()
		b.slot.markFailed(opErr)
		b.mu.Unlock()
		if m.OnError != nil {
			m.OnError(key, opErr)
		}
		m.log().Errorf("task %s failed: %v", key, err)
		m.channel.NotifyError(opErr)
		return opErr
	}

	b.mu.Lock()
	b.slot.markSucceeded(v)
	b.mu.Unlock()
	if m.OnData != nil {
		m.OnData(key, v)
	}
	m.log().Debugf("task %s succeeded", key)
	m.channel.NotifyChanged()
	return nil
}

// NotifySourceChanged marks every key's backing source as stale.
//
// It does not run anything and does not notify listeners; the next
// RunAll clears the marks and re-invokes every producer.
func (m *MultiController) NotifySourceChanged() {
	for _, key := range m.keys {
		b := m.slots[key]
		b.mu.Lock()
		b.slot.stale = true
		b.mu.Unlock()
	}
}

// SourceStale reports whether NotifySourceChanged was called since the
// last RunAll started.
func (m *MultiController) SourceStale() bool {
	for _, key := range m.keys {
		b := m.slots[key]
		b.mu.Lock()
		stale := b.slot.stale
		b.mu.Unlock()
		if stale {
			return true
		}
	}
	return false
}

// Task returns a point-in-time view of one key's operation.
func (m *MultiController) Task(key string) (Snapshot, error) {
	b, ok := m.slots[key]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.slot.snapshot(), nil
}

// Busy reports whether key's producer invocation is in flight.
// Unknown keys return an error wrapping [ErrUnknownKey].
func (m *MultiController) Busy(key string) (bool, error) {
	b, ok := m.slots[key]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.slot.busy(), nil
}

// HasError reports whether key is in the failed state.
// Unknown keys return an error wrapping [ErrUnknownKey].
func (m *MultiController) HasError(key string) (bool, error) {
	b, ok := m.slots[key]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.slot.status == StatusFailed, nil
}

// Failure returns the stored failure for key, or nil when the key is not
// in the failed state. The second return reports an unknown key.
func (m *MultiController) Failure(key string) (error, error) {
	b, ok := m.slots[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.slot.status != StatusFailed {
		return nil, nil
	}
	return b.slot.err, nil
}

// DataMap returns a copy of the last successful value per key. Keys that
// never succeeded, or that have failed since, are absent.
func (m *MultiController) DataMap() map[string]any {
	out := make(map[string]any, len(m.keys))
	for _, key := range m.keys {
		b := m.slots[key]
		b.mu.Lock()
		if b.slot.hasData {
			out[key] = b.slot.data
		}
		b.mu.Unlock()
	}
	return out
}

// Keys returns the registry keys in sorted order.
func (m *MultiController) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// AddListener registers a callback fired on every state transition of
// any key. Returns an unsubscribe function.
func (m *MultiController) AddListener(fn func()) func() {
	return m.channel.AddListener(fn)
}

// AddErrorListener registers a callback fired on every failed key.
// Returns an unsubscribe function.
func (m *MultiController) AddErrorListener(fn func(error)) func() {
	return m.channel.AddErrorListener(fn)
}

// Revision returns the number of notifications delivered so far.
func (m *MultiController) Revision() uint64 {
	return m.channel.Revision()
}

func (m *MultiController) log() log.Logger {
	if m.Logger == nil {
		return log.Noop
	}
	return m.Logger
}
