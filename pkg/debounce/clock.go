package debounce

import "time"

// Clock abstracts the wall clock so tests can drive elapsed time directly.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// AfterFunc waits for d to elapse and then calls fn on its own goroutine.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a pending wake-up that can be stopped before it fires.
type Timer interface {
	// Stop cancels the wake-up. It reports whether the call prevented the
	// wake-up from firing.
	Stop() bool
}

// SystemClock returns the process wall clock.
func SystemClock() Clock { return systemClock{} }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return systemTimer{t: time.AfterFunc(d, fn)}
}

type systemTimer struct{ t *time.Timer }

func (st systemTimer) Stop() bool { return st.t.Stop() }
