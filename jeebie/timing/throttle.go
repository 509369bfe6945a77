package timing

// Throttle paces a stream of executed instructions to real time. The CPU
// reports the M-cycles of every instruction through Advance, and the throttle
// blocks once a frame's worth of cycles has run ahead of the wall clock.
type Throttle interface {
	Advance(cycles int)
	Reset()
}

// NoThrottle runs as fast as possible.
var NoThrottle Throttle = noThrottle{}

type noThrottle struct{}

func (noThrottle) Advance(int) {}
func (noThrottle) Reset()      {}

// FrameThrottle accumulates cycles and waits on its Limiter for every
// CyclesPerFrame of them.
type FrameThrottle struct {
	limiter Limiter
	pending int
}

func NewFrameThrottle(limiter Limiter) *FrameThrottle {
	return &FrameThrottle{limiter: limiter}
}

// NewRealtime returns a throttle running at the DMG clock rate.
func NewRealtime() *FrameThrottle {
	return NewFrameThrottle(NewAdaptiveLimiter())
}

func (t *FrameThrottle) Advance(cycles int) {
	t.pending += cycles
	for t.pending >= CyclesPerFrame {
		t.pending -= CyclesPerFrame
		t.limiter.WaitForNextFrame()
	}
}

// Reset drops pending cycles and restarts the schedule, useful after pauses.
func (t *FrameThrottle) Reset() {
	t.pending = 0
	t.limiter.Reset()
}
