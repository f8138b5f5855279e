// Package debounce coalesces bursts of calls into at most one leading and one
// trailing invocation of a target operation.
//
// A Scheduler owns a small timer-driven state machine. The first call of a
// burst may invoke the target immediately (leading edge), calls that keep
// arriving within the quiet period are absorbed, and once the burst goes
// quiet the last call's arguments produce the final invocation (trailing
// edge). An optional ceiling bounds how long a busy burst can defer the
// target. Both the clock and the timer backend are injectable, so the state
// machine can be driven deterministically in tests.
package debounce

import (
	"sync"
	"time"
)

// Scheduler rate-limits invocations of a single target operation. A and R are
// the operation's argument bundle and result types.
//
// A Scheduler models one logical caller: invocations are strictly ordered and
// at most one wake-up is outstanding at a time. The state is mutex-guarded
// because timer backends fire their callbacks on separate goroutines; the
// target itself always runs outside the lock, so it may call back into the
// scheduler.
type Scheduler[A, R any] struct {
	fn       func(A) R
	wait     time.Duration
	maxWait  time.Duration
	hasMax   bool
	leading  bool
	trailing bool
	clock    Clock
	backend  Backend

	mu          sync.Mutex
	gen         int // orphans wake-ups whose Stop raced a re-arm
	timer       Timer
	lastCall    time.Time
	hasLastCall bool
	lastInvoke  time.Time
	pendingArgs A
	hasPending  bool
	lastResult  R
}

// New builds a Scheduler around fn. It fails with ErrNilTarget when fn is
// nil and with ErrInvalidConfig when the options cannot form a valid
// scheduler (negative durations, max wait below wait).
func New[A, R any](fn func(A) R, opts ...Option) (*Scheduler[A, R], error) {
	if fn == nil {
		return nil, ErrNilTarget
	}
	st := settings{trailing: true, clock: SystemClock()}
	for _, o := range opts {
		o(&st)
	}
	if err := st.validate(); err != nil {
		return nil, err
	}
	return &Scheduler[A, R]{
		fn:       fn,
		wait:     st.wait,
		maxWait:  st.maxWait,
		hasMax:   st.hasMaxWait,
		leading:  st.leading,
		trailing: st.trailing,
		clock:    st.clock,
		backend:  st.pickBackend(),
	}, nil
}

// Call records args as the burst's latest and runs the edge logic. It never
// blocks beyond a synchronous leading-edge invocation of the target.
func (s *Scheduler[A, R]) Call(args A) {
	now := s.clock.Now()

	s.mu.Lock()
	invokeNow := s.shouldInvokeLocked(now)
	ceilingHit := s.hasMax && now.Sub(s.lastInvoke) >= s.maxWait
	s.pendingArgs, s.hasPending = args, true
	s.lastCall, s.hasLastCall = now, true

	if invokeNow && s.timer == nil {
		// Leading edge: open the burst window. The invoke time advances even
		// when no leading invocation happens, so the ceiling is measured from
		// the start of the burst.
		s.lastInvoke = now
		s.armLocked(s.wait)
		if !s.leading {
			s.mu.Unlock()
			return
		}
		run := s.takePendingLocked()
		s.mu.Unlock()
		s.runTarget(run)
		return
	}
	if invokeNow && ceilingHit {
		// Ceiling tripped inside a live burst: invoke immediately and keep a
		// fresh trailing window open. This is what lets a tight call loop
		// still make progress.
		s.disarmLocked()
		s.armLocked(s.wait)
		s.lastInvoke = now
		run := s.takePendingLocked()
		s.mu.Unlock()
		s.runTarget(run)
		return
	}
	if s.timer == nil {
		s.armLocked(s.wait)
	}
	s.mu.Unlock()
}

// Cancel discards any scheduled wake-up and the captured burst without
// invoking the target. The last invocation time and result are history, not
// burst state, and stay as they are. Idempotent, and safe to call from
// inside the target.
func (s *Scheduler[A, R]) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.disarmLocked()
	var zero A
	s.pendingArgs = zero
	s.hasPending = false
	s.lastCall = time.Time{}
	s.hasLastCall = false
}

// Flush forces the trailing invocation right away when one is pending and
// returns its result. When idle it is a no-op returning the last recorded
// result (the zero value before any invocation has happened).
func (s *Scheduler[A, R]) Flush() R {
	now := s.clock.Now()

	s.mu.Lock()
	if s.timer == nil {
		res := s.lastResult
		s.mu.Unlock()
		return res
	}
	s.gen++
	run, ok := s.settleTrailingLocked(now)
	res := s.lastResult
	s.mu.Unlock()
	if ok {
		return s.runTarget(run)
	}
	return res
}

// Pending reports whether a wake-up is scheduled, i.e. a burst is open.
func (s *Scheduler[A, R]) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// shouldInvokeLocked is the single invoke-now predicate shared by Call and
// the wake-up handler.
func (s *Scheduler[A, R]) shouldInvokeLocked(now time.Time) bool {
	if !s.hasLastCall {
		return true
	}
	sinceCall := now.Sub(s.lastCall)
	if sinceCall >= s.wait || sinceCall < 0 {
		// Quiet period elapsed, or the clock moved backward; either way this
		// instant is a burst boundary.
		return true
	}
	return s.hasMax && now.Sub(s.lastInvoke) >= s.maxWait
}

// wakeUp handles an elapsed timer. Stale generations are discarded: a re-arm,
// cancel, or flush may have raced the backend callback.
func (s *Scheduler[A, R]) wakeUp(gen int) {
	now := s.clock.Now()

	s.mu.Lock()
	if gen != s.gen || s.timer == nil {
		s.mu.Unlock()
		return
	}
	if !s.shouldInvokeLocked(now) {
		// The burst is still warm; sleep out the remainder.
		s.armLocked(s.remainingLocked(now))
		s.mu.Unlock()
		return
	}
	run, ok := s.settleTrailingLocked(now)
	s.mu.Unlock()
	if ok {
		s.runTarget(run)
	}
}

// settleTrailingLocked returns the machine to idle and reports whether a
// trailing invocation should run with the returned arguments. State is fully
// settled before the caller releases the lock and invokes, so a re-entrant
// Call or Cancel from the target sees a consistent idle machine.
func (s *Scheduler[A, R]) settleTrailingLocked(now time.Time) (A, bool) {
	s.disarmLocked()
	s.lastCall = time.Time{}
	s.hasLastCall = false
	if s.trailing && s.hasPending {
		s.lastInvoke = now
		return s.takePendingLocked(), true
	}
	var zero A
	s.pendingArgs = zero
	s.hasPending = false
	return zero, false
}

// remainingLocked computes how long to sleep when a wake-up fired early
// relative to the burst's latest call.
func (s *Scheduler[A, R]) remainingLocked(now time.Time) time.Duration {
	rest := s.wait - now.Sub(s.lastCall)
	if s.hasMax {
		if capped := s.maxWait - now.Sub(s.lastInvoke); capped < rest {
			rest = capped
		}
	}
	if rest < 0 {
		rest = 0
	}
	return rest
}

func (s *Scheduler[A, R]) takePendingLocked() A {
	args := s.pendingArgs
	var zero A
	s.pendingArgs = zero
	s.hasPending = false
	return args
}

func (s *Scheduler[A, R]) armLocked(d time.Duration) {
	s.gen++
	gen := s.gen
	s.timer = s.backend.Schedule(d, func() { s.wakeUp(gen) })
}

func (s *Scheduler[A, R]) disarmLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// runTarget invokes the target outside the lock and records its result. A
// panic in the target propagates to the caller (or the timer goroutine for a
// trailing wake-up); the state machine is already idle by this point, so a
// failed invocation never wedges it.
func (s *Scheduler[A, R]) runTarget(args A) R {
	res := s.fn(args)
	s.mu.Lock()
	s.lastResult = res
	s.mu.Unlock()
	return res
}
