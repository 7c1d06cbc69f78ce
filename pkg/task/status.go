package task

import "fmt"

// Status is the lifecycle state of a tracked operation.
//
// The status follows this state machine:
//
//	          Run()              resolve
//	Idle ─────────────► Running ─────────► Succeeded / Failed
//	                       ▲                       │
//	                       └───────── Run() ───────┘
//
// There is no terminal state; a completed operation returns to Running
// on the next run.
type Status int

const (
	// StatusIdle means the operation has never been run.
	StatusIdle Status = iota
	// StatusRunning means a producer invocation is in flight.
	StatusRunning
	// StatusSucceeded means the last completed run produced a value.
	StatusSucceeded
	// StatusFailed means the last completed run reported a failure.
	StatusFailed
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}
