package debounce

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNilTarget reports a nil target operation.
	ErrNilTarget = errors.New("debounce: target operation is nil")
	// ErrInvalidConfig reports option values that cannot form a valid
	// scheduler. Wrapped errors carry the offending values; match with
	// errors.Is.
	ErrInvalidConfig = errors.New("debounce: invalid configuration")
)

type settings struct {
	wait       time.Duration
	hasWait    bool
	maxWait    time.Duration
	hasMaxWait bool
	leading    bool
	trailing   bool
	clock      Clock
	backend    Backend
	frames     FrameSource
}

// Option adjusts scheduler construction.
type Option func(*settings)

// WithWait sets the nominal quiet period. When omitted, wake-ups align with
// render frames instead of a fixed delay (see WithFrameSource).
func WithWait(d time.Duration) Option {
	return func(s *settings) { s.wait = d; s.hasWait = true }
}

// WithLeading controls invocation at the start of a burst. Off by default.
func WithLeading(on bool) Option {
	return func(s *settings) { s.leading = on }
}

// WithTrailing controls invocation at the end of a burst. On by default.
func WithTrailing(on bool) Option {
	return func(s *settings) { s.trailing = on }
}

// WithMaxWait caps how long an invocation may be deferred, measured from the
// previous invocation. Must be at least the wait.
func WithMaxWait(d time.Duration) Option {
	return func(s *settings) { s.maxWait = d; s.hasMaxWait = true }
}

// WithClock injects the time source. Defaults to the system clock.
func WithClock(c Clock) Option {
	return func(s *settings) { s.clock = c }
}

// WithBackend injects the timer backend directly, overriding the usual
// fixed-delay/frame-aligned selection. Tests use this with a hand-driven
// backend.
func WithBackend(b Backend) Option {
	return func(s *settings) { s.backend = b }
}

// WithFrameSource supplies the frame primitive used when no wait is set.
// Without one, a waitless scheduler falls back to a zero-delay timer.
func WithFrameSource(fs FrameSource) Option {
	return func(s *settings) { s.frames = fs }
}

func (s *settings) validate() error {
	if s.hasWait && s.wait < 0 {
		return fmt.Errorf("%w: negative wait %v", ErrInvalidConfig, s.wait)
	}
	if s.hasMaxWait {
		if s.maxWait < 0 {
			return fmt.Errorf("%w: negative max wait %v", ErrInvalidConfig, s.maxWait)
		}
		if s.maxWait < s.wait {
			return fmt.Errorf("%w: max wait %v is below wait %v", ErrInvalidConfig, s.maxWait, s.wait)
		}
	}
	return nil
}

func (s *settings) pickBackend() Backend {
	if s.backend != nil {
		return s.backend
	}
	if !s.hasWait && s.frames != nil {
		return frameBackend{frames: s.frames}
	}
	return fixedBackend{clock: s.clock}
}
