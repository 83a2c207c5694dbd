package scheduler

import "time"

// Timer is a pending callback armed by AfterFunc.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the
	// call stopped the timer, false if it already ran or was stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay. Every callback armed on the same
// Scheduler runs on one logical thread, one at a time.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}
