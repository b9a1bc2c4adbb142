// Package sched provides cancellable timers for code that runs on a single
// event loop.
//
// Callers schedule callbacks with Schedule and may revoke them with Cancel.
// A cancelled callback never runs, even though the underlying delay still
// elapses. Blocking work is handed to Go, which runs it off the loop and
// delivers the returned completion back onto the loop.
//
// Two implementations exist: Loop drives a Bubble Tea program, and Manual is
// a virtual clock for tests and headless use.
package sched

import "time"

// Handle identifies a scheduled callback. The zero Handle is never issued.
type Handle uint64

// Scheduler runs callbacks on a single logical thread.
type Scheduler interface {
	// Schedule arranges for fn to run after delay and returns a handle that
	// can be passed to Cancel.
	Schedule(delay time.Duration, fn func()) Handle
	// Cancel suppresses a pending callback. Unknown or already-fired handles
	// are ignored.
	Cancel(h Handle)
	// Go runs work off the loop. The function it returns, if non-nil, runs
	// back on the loop.
	Go(work func() func())
}
