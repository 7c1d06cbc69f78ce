// Package task provides reactive controllers for long-running
// asynchronous operations.
//
// A controller wraps one or more producer functions, tracks each
// operation's lifecycle (idle, running, succeeded, failed), keeps the
// latest result or failure, and notifies subscribers on every
// transition so presentation code can re-render.
//
// # Core Types
//
//   - [Controller]: wraps a single [Producer] and one state slot. Run
//     blocks until the producer resolves and transitions the slot
//     through Running to Succeeded or Failed.
//
//   - [MultiController]: wraps a fixed registry of keyed producers. RunAll
//     marks every key busy, launches all producers concurrently, and
//     returns once the slowest one has resolved. Each key's state is
//     fully isolated: one key's failure never cancels or delays a
//     sibling.
//
//   - [Snapshot]: a point-in-time view of one tracked operation.
//
// # Basic Usage
//
//	ctrl := task.NewController(func(ctx context.Context) (Profile, error) {
//	    return api.FetchProfile(ctx)
//	})
//	ctrl.AddListener(func() {
//	    // re-render from ctrl.Busy(), ctrl.Data(), ctrl.Err()
//	})
//	go ctrl.Run(ctx)
//
// # Freshness
//
// Controllers never cache: every Run re-invokes the producer. While a
// re-run is in flight the previous cycle's value stays readable, so
// observers can keep showing the last good result until the fresh one
// lands. NotifySourceChanged marks the backing source stale without
// running anything; it exists so callers can record that the next run
// must not be treated as a cache hit.
//
// # What the package does not do
//
// There is no mid-flight cancellation, de-duplication of overlapping
// runs, retry policy, or persistence. A producer that never returns
// leaves its slot busy forever. Producers receive the caller's context
// and may honor its deadline themselves.
package task
