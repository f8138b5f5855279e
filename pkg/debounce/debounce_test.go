package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeClock is a settable time source. It never advances on its own.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(ms int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = time.Unix(1_700_000_000, 0).Add(time.Duration(ms) * time.Millisecond)
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	// Tests that exercise AfterFunc selection use recordingClock instead.
	panic("fakeClock.AfterFunc: tests drive wake-ups through manualBackend")
}

// manualBackend records scheduled wake-ups and fires them only when the test
// says so, mirroring how a cooperative event loop would.
type manualBackend struct {
	mu        sync.Mutex
	scheduled []*manualTimer
}

type manualTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (b *manualBackend) Schedule(d time.Duration, fn func()) Timer {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := &manualTimer{delay: d, fn: fn}
	b.scheduled = append(b.scheduled, t)
	return t
}

// pending returns the single live wake-up, or nil.
func (b *manualBackend) pending() *manualTimer {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.scheduled) - 1; i >= 0; i-- {
		if t := b.scheduled[i]; !t.stopped && !t.fired {
			return t
		}
	}
	return nil
}

// fire runs the live wake-up, as if its deadline elapsed.
func (b *manualBackend) fire(t *testing.T) {
	t.Helper()
	mt := b.pending()
	require.NotNil(t, mt, "no live wake-up to fire")
	mt.fired = true
	mt.fn()
}

// harness bundles a scheduler over string args with recorded invocations.
type harness struct {
	clock   *fakeClock
	backend *manualBackend
	sched   *Scheduler[string, string]
	calls   []string
	times   []int64
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{clock: newFakeClock(), backend: &manualBackend{}}
	base := time.Unix(1_700_000_000, 0)
	fn := func(s string) string {
		h.calls = append(h.calls, s)
		h.times = append(h.times, h.clock.Now().Sub(base).Milliseconds())
		return "ran:" + s
	}
	all := append([]Option{WithClock(h.clock), WithBackend(h.backend)}, opts...)
	sched, err := New(fn, all...)
	require.NoError(t, err)
	h.sched = sched
	return h
}

func (h *harness) callAt(ms int64, args string) {
	h.clock.Set(ms)
	h.sched.Call(args)
}

func (h *harness) wakeAt(t *testing.T, ms int64) {
	t.Helper()
	h.clock.Set(ms)
	h.backend.fire(t)
}

func TestTrailingCoalescesBurst(t *testing.T) {
	h := newHarness(t, WithWait(100*time.Millisecond))

	h.callAt(0, "A")
	h.callAt(30, "B")
	h.callAt(60, "C")
	require.Empty(t, h.calls)
	require.True(t, h.sched.Pending())

	// The wake-up armed at t=0 elapses at t=100; the burst is still warm, so
	// it re-arms for the remaining 60ms.
	h.wakeAt(t, 100)
	require.Empty(t, h.calls)
	require.True(t, h.sched.Pending())
	require.Equal(t, 60*time.Millisecond, h.backend.pending().delay)

	h.wakeAt(t, 160)
	require.Equal(t, []string{"C"}, h.calls)
	require.Equal(t, []int64{160}, h.times)
	require.False(t, h.sched.Pending())
}

func TestLeadingOnly(t *testing.T) {
	h := newHarness(t, WithWait(100*time.Millisecond), WithLeading(true), WithTrailing(false))

	h.callAt(0, "A")
	require.Equal(t, []string{"A"}, h.calls)
	require.Equal(t, []int64{0}, h.times)

	h.callAt(30, "B")
	h.callAt(60, "C")
	require.Equal(t, []string{"A"}, h.calls)

	h.wakeAt(t, 100)
	h.wakeAt(t, 160)
	require.Equal(t, []string{"A"}, h.calls, "trailing edge disabled")
	require.False(t, h.sched.Pending())

	// Quiet period over: the next call is a fresh leading edge.
	h.callAt(300, "D")
	require.Equal(t, []string{"A", "D"}, h.calls)
}

func TestLeadingAndTrailing(t *testing.T) {
	h := newHarness(t, WithWait(100*time.Millisecond), WithLeading(true), WithTrailing(true))

	h.callAt(0, "A")
	h.callAt(30, "B")
	h.callAt(60, "C")
	h.wakeAt(t, 100)
	h.wakeAt(t, 160)

	require.Equal(t, []string{"A", "C"}, h.calls)
	require.Equal(t, []int64{0, 160}, h.times)
}

func TestLeadingSingleCallNoTrailingDuplicate(t *testing.T) {
	h := newHarness(t, WithWait(100*time.Millisecond), WithLeading(true), WithTrailing(true))

	h.callAt(0, "A")
	h.wakeAt(t, 100)

	// One call, one invocation: the leading edge consumed the args.
	require.Equal(t, []string{"A"}, h.calls)
	require.False(t, h.sched.Pending())
}

func TestMaxWaitCeiling(t *testing.T) {
	h := newHarness(t, WithWait(100*time.Millisecond), WithMaxWait(250*time.Millisecond))

	// Continuous calls every 40ms, wake-ups fired as their deadlines elapse,
	// the way a real event loop would interleave them.
	h.callAt(0, "A")
	h.callAt(40, "B")
	h.callAt(80, "C")
	h.wakeAt(t, 100) // warm: remaining = min(100-20, 250-100) = 80
	require.Empty(t, h.calls)
	require.Equal(t, 80*time.Millisecond, h.backend.pending().delay)

	h.callAt(120, "D")
	h.callAt(160, "E")
	h.wakeAt(t, 180) // warm: remaining = min(80, 250-180) = 70
	require.Empty(t, h.calls)
	require.Equal(t, 70*time.Millisecond, h.backend.pending().delay)

	h.callAt(200, "F")
	h.callAt(240, "G")
	h.wakeAt(t, 250) // ceiling: 250ms since the burst opened
	require.Equal(t, []string{"G"}, h.calls)
	require.Equal(t, []int64{250}, h.times)
	require.False(t, h.sched.Pending())

	// The burst carries on; the next trailing lands at 500, a 250ms gap.
	h.callAt(280, "H")
	h.callAt(320, "I")
	h.callAt(360, "J")
	h.callAt(400, "K")
	h.wakeAt(t, 380)
	h.wakeAt(t, 460)
	h.wakeAt(t, 500)
	require.Equal(t, []string{"G", "K"}, h.calls)
	require.Equal(t, []int64{250, 500}, h.times)
	require.LessOrEqual(t, h.times[1]-h.times[0], int64(250))
}

func TestMaxWaitTightLoopInvokesOnCall(t *testing.T) {
	// Calls spaced closer than the wait, with the ceiling tripping between
	// wake-ups: the call itself must invoke and re-arm.
	h := newHarness(t, WithWait(50*time.Millisecond), WithMaxWait(50*time.Millisecond))

	h.callAt(0, "A")
	require.Empty(t, h.calls)
	h.callAt(50, "B") // ceiling: 50ms since burst opened, timer still armed
	require.Equal(t, []string{"B"}, h.calls)
	require.True(t, h.sched.Pending(), "trailing window re-armed")

	h.wakeAt(t, 100)
	require.Equal(t, []string{"B"}, h.calls, "no pending args left")
}

func TestCancelDropsBurst(t *testing.T) {
	h := newHarness(t, WithWait(100*time.Millisecond))

	h.callAt(0, "A")
	require.True(t, h.sched.Pending())

	h.sched.Cancel()
	require.False(t, h.sched.Pending())
	require.Empty(t, h.calls)

	// Idempotent, and the machine accepts a fresh burst afterwards.
	h.sched.Cancel()
	h.callAt(200, "B")
	h.wakeAt(t, 300)
	require.Equal(t, []string{"B"}, h.calls)
}

func TestFlushIdleIsNoop(t *testing.T) {
	h := newHarness(t, WithWait(100*time.Millisecond))

	require.Equal(t, "", h.sched.Flush(), "zero value before any invocation")
	require.Empty(t, h.calls)

	h.callAt(0, "A")
	h.wakeAt(t, 100)
	require.Equal(t, []string{"A"}, h.calls)

	// Idle again: Flush returns the recorded result without invoking.
	require.Equal(t, "ran:A", h.sched.Flush())
	require.Equal(t, []string{"A"}, h.calls)
}

func TestFlushPendingInvokesNow(t *testing.T) {
	h := newHarness(t, WithWait(100*time.Millisecond))

	h.callAt(0, "A")
	h.callAt(30, "B")
	h.clock.Set(40)

	require.Equal(t, "ran:B", h.sched.Flush())
	require.Equal(t, []string{"B"}, h.calls)
	require.Equal(t, []int64{40}, h.times, "flush does not wait for the delay")
	require.False(t, h.sched.Pending())

	// The stale wake-up from t=0 must be inert.
	if mt := h.backend.pending(); mt != nil {
		h.wakeAt(t, 100)
	}
	require.Equal(t, []string{"B"}, h.calls)
}

func TestFlushTrailingDisabled(t *testing.T) {
	h := newHarness(t, WithWait(100*time.Millisecond), WithLeading(true), WithTrailing(false))

	h.callAt(0, "A")
	h.callAt(30, "B")

	require.Equal(t, "ran:A", h.sched.Flush(), "no trailing invocation, last result stands")
	require.Equal(t, []string{"A"}, h.calls)
	require.False(t, h.sched.Pending())
}

func TestClockRegressionStartsNewBurst(t *testing.T) {
	h := newHarness(t, WithWait(100*time.Millisecond))

	h.callAt(500, "A")
	h.callAt(400, "B") // clock went backward: burst boundary

	// The wake-up sees a negative elapsed-since-call and must invoke rather
	// than re-arm forever.
	h.clock.Set(350)
	h.backend.fire(t)
	require.Equal(t, []string{"B"}, h.calls)
	require.False(t, h.sched.Pending())
}

func TestReentrantCancelFromTarget(t *testing.T) {
	clock := newFakeClock()
	backend := &manualBackend{}

	var sched *Scheduler[int, int]
	var got []int
	fn := func(v int) int {
		got = append(got, v)
		sched.Cancel() // must not deadlock; machine is already idle
		return v
	}
	sched, err := New(fn, WithWait(100*time.Millisecond), WithClock(clock), WithBackend(backend))
	require.NoError(t, err)

	clock.Set(0)
	sched.Call(7)
	clock.Set(100)
	backend.fire(t)
	require.Equal(t, []int{7}, got)
	require.False(t, sched.Pending())

	// And again through Flush.
	clock.Set(300)
	sched.Call(9)
	require.Equal(t, []int{7}, got)
	require.Equal(t, 9, sched.Flush())
	require.Equal(t, []int{7, 9}, got)
	require.False(t, sched.Pending())
}

func TestTargetPanicLeavesMachineIdle(t *testing.T) {
	clock := newFakeClock()
	backend := &manualBackend{}

	boom := true
	sched, err := New(func(v int) int {
		if boom {
			panic("target failure")
		}
		return v * 2
	}, WithWait(100*time.Millisecond), WithClock(clock), WithBackend(backend))
	require.NoError(t, err)

	clock.Set(0)
	sched.Call(1)
	clock.Set(40)
	require.Panics(t, func() { sched.Flush() })
	require.False(t, sched.Pending(), "panic must not leave the machine stuck")

	boom = false
	clock.Set(200)
	sched.Call(2)
	clock.Set(300)
	backend.fire(t)
	require.Equal(t, 4, sched.Flush())
}

func TestNewValidation(t *testing.T) {
	_, err := New[int, int](nil)
	require.ErrorIs(t, err, ErrNilTarget)

	fn := func(int) int { return 0 }

	_, err = New(fn, WithWait(-time.Second))
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(fn, WithWait(100*time.Millisecond), WithMaxWait(50*time.Millisecond))
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(fn, WithMaxWait(-time.Second))
	require.ErrorIs(t, err, ErrInvalidConfig)

	// Equal wait and max wait is allowed.
	_, err = New(fn, WithWait(time.Second), WithMaxWait(time.Second))
	require.NoError(t, err)
}

func TestZeroWaitStillCoalescesToWakeup(t *testing.T) {
	// Explicit zero wait keeps the fixed-delay shape: the trailing edge runs
	// on the next wake-up, not synchronously.
	h := newHarness(t, WithWait(0))

	h.callAt(0, "A")
	h.callAt(0, "B")
	require.Empty(t, h.calls)
	require.True(t, h.sched.Pending())

	h.wakeAt(t, 0)
	require.Equal(t, []string{"B"}, h.calls)
}
