package port

import "time"

// Scheduler is the single UI-affine execution context.
// Tab lists and the window registry are only touched from functions it runs.
type Scheduler interface {
	// Post queues fn to run on the execution context.
	// Safe to call from any goroutine.
	Post(fn func())

	// AfterFunc runs fn on the execution context once d has elapsed.
	// The returned stop function cancels fn if it has not started yet.
	AfterFunc(d time.Duration, fn func()) (stop func() bool)
}

// KeyedPoster posts work to the execution context, keeping only the latest
// pending function per key.
type KeyedPoster interface {
	Post(key string, fn func())
}
