// Package notify provides the synchronous change-notification primitives
// used by viewstate controllers.
//
// # Core Types
//
// Notifier is an ordered fan-out primitive: listeners subscribe with
// [Notifier.AddListener] and are invoked synchronously, in subscription
// order, on every call to [Notifier.Notify]. It is not an async pub/sub
// bus; delivery happens on the notifying goroutine before Notify returns.
//
// Channel layers an error signal on top of the change signal. Controllers
// own a Channel (composition, not inheritance) and delegate their
// subscribe calls to it, so presentation code can react to "something
// changed" without knowing which controller field moved.
//
// # Re-entrancy
//
// Both types are safe to use from listener callbacks: a listener may
// subscribe, unsubscribe, or trigger another notification while a pass is
// in flight. Listeners added during a pass are not invoked until the next
// pass; listeners removed during a pass are skipped if they have not fired
// yet.
//
// # Constructor Conventions
//
// Long-lived mutable objects use NewX() constructors returning pointers:
//
//	changed := notify.NewNotifier()
//	channel := notify.NewChannel()
package notify
