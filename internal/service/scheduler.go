package service

import "time"

// Timer is a pending one-shot callback.
type Timer interface {
	// Stop cancels the callback; it reports false when it already ran or was stopped.
	Stop() bool
}

// Scheduler arms one-shot callbacks. Production code uses the wall clock,
// tests drive a manual fake.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

// NewScheduler returns a Scheduler backed by time.AfterFunc.
func NewScheduler() Scheduler { return clockScheduler{} }

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
