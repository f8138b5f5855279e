package debounce

import "time"

// Backend schedules a Scheduler's wake-ups. A scheduler holds one backend and
// keeps at most one wake-up outstanding; re-arming stops the previous handle
// before requesting a new one.
type Backend interface {
	// Schedule arranges for fn to run once, roughly d from now.
	Schedule(d time.Duration, fn func()) Timer
}

// fixedBackend fires after the requested delay using the injected clock.
type fixedBackend struct{ clock Clock }

func (b fixedBackend) Schedule(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	return b.clock.AfterFunc(d, fn)
}

// FrameSource delivers render-frame boundaries to the frame-aligned backend.
type FrameSource interface {
	// OnFrame registers fn to run once on the next frame boundary. The
	// returned cancel reports whether it prevented fn from running.
	OnFrame(fn func()) (cancel func() bool)
}

// frameBackend aligns wake-ups with the host's render frames. The requested
// delay is ignored; the wake-up runs on the next frame.
type frameBackend struct{ frames FrameSource }

func (b frameBackend) Schedule(_ time.Duration, fn func()) Timer {
	return frameTimer{cancel: b.frames.OnFrame(fn)}
}

type frameTimer struct{ cancel func() bool }

func (t frameTimer) Stop() bool { return t.cancel() }
