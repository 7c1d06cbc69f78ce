package task

// slot is the mutable state record of one tracked operation.
//
// data survives a re-run: a new Running transition keeps the previous
// cycle's value and error readable until the new cycle completes
// (stale-read-until-fresh-write). A failed completion clears data; a
// successful completion clears err. The two are never set together.
type slot[T any] struct {
	status  Status
	data    T
	hasData bool
	err     error
	stale   bool
}

// markRunning starts a new cycle. Prior data/err are intentionally kept.
func (s *slot[T]) markRunning() {
	s.status = StatusRunning
	s.stale = false
}

func (s *slot[T]) markSucceeded(v T) {
	s.status = StatusSucceeded
	s.data = v
	s.hasData = true
	s.err = nil
}

func (s *slot[T]) markFailed(err error) {
	s.status = StatusFailed
	s.err = err
	var zero T
	s.data = zero
	s.hasData = false
}

func (s *slot[T]) busy() bool {
	return s.status == StatusRunning
}

func (s *slot[T]) snapshot() Snapshot {
	snap := Snapshot{
		Status: s.status,
		Err:    s.err,
		Busy:   s.busy(),
	}
	if s.hasData {
		snap.Data = s.data
	}
	return snap
}

// Snapshot is a point-in-time view of one tracked operation.
//
// While a re-run is in flight, Data and Err still reflect the previous
// completed cycle, so Busy combined with a non-nil Data means "refresh
// in progress, last good value shown".
type Snapshot struct {
	// Status is the lifecycle state at snapshot time.
	Status Status
	// Data is the last successfully produced value, or nil if the
	// operation never succeeded or has failed since.
	Data any
	// Err is the recorded failure, or nil if the last completed run
	// succeeded (or no run completed yet).
	Err error
	// Busy is true while a producer invocation is in flight.
	Busy bool
}
