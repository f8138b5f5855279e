package debounce

import (
	"sync"
	"time"
)

// TickerFrames approximates render-frame boundaries with a fixed-rate ticker.
// It is the production FrameSource for TUIs that repaint at a known FPS; the
// tick cadence should match the renderer's so debounced work lands on frame
// edges rather than between them.
type TickerFrames struct {
	interval time.Duration

	mu      sync.Mutex
	seq     int
	waiting map[int]func()
	done    chan struct{}
}

// NewTickerFrames returns a stopped frame source ticking at fps (60 when fps
// is not positive). Call Start before scheduling against it.
func NewTickerFrames(fps int) *TickerFrames {
	if fps <= 0 {
		fps = 60
	}
	return &TickerFrames{
		interval: time.Second / time.Duration(fps),
		waiting:  make(map[int]func()),
	}
}

// Start begins delivering frames. Idempotent.
func (f *TickerFrames) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.done != nil {
		return
	}
	f.done = make(chan struct{})
	go f.loop(f.done)
}

// Stop halts frame delivery. Callbacks registered but not yet fired stay
// registered and run if Start is called again.
func (f *TickerFrames) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.done == nil {
		return
	}
	close(f.done)
	f.done = nil
}

// OnFrame registers fn to run once on the next frame boundary.
func (f *TickerFrames) OnFrame(fn func()) func() bool {
	f.mu.Lock()
	f.seq++
	id := f.seq
	f.waiting[id] = fn
	f.mu.Unlock()
	return func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.waiting[id]; !ok {
			return false
		}
		delete(f.waiting, id)
		return true
	}
}

func (f *TickerFrames) loop(done chan struct{}) {
	t := time.NewTicker(f.interval)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			f.fire()
		}
	}
}

func (f *TickerFrames) fire() {
	f.mu.Lock()
	batch := f.waiting
	f.waiting = make(map[int]func())
	f.mu.Unlock()
	for _, fn := range batch {
		fn()
	}
}
