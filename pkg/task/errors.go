package task

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownKey is returned by keyed accessors when the key is not part
// of the controller's registry.
var ErrUnknownKey = errors.New("task: unknown key")

// OperationError represents a failed producer run.
//
// It is the only failure kind the package records: the controller is
// opaque to failure cause and wraps whatever the producer returned (or
// panicked with) without classifying it.
type OperationError struct {
	// Op is the operation that failed (e.g. "task.Controller.Run").
	Op string
	// Key is the registry key of the failed operation. Empty for single
	// controllers.
	Key string
	// Err is the underlying failure reported by the producer.
	Err error
	// Panicked is true when the producer panicked instead of returning
	// an error.
	Panicked bool
	// Timestamp is when the failure was recorded.
	Timestamp time.Time
}

func (e *OperationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s key=%s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// operationError records a producer failure for op/key at the current time.
func operationError(op, key string, err error, panicked bool) *OperationError {
	return &OperationError{
		Op:        op,
		Key:       key,
		Err:       err,
		Panicked:  panicked,
		Timestamp: time.Now(),
	}
}

// panicToError normalizes a recovered panic value to an error.
func panicToError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}
