package timing

import "time"

// The DMG clock, counted in M-cycles (4 clocks each) like the CPU reports.
const (
	// CyclesPerFrame is one LCD refresh, 154 lines of 114 M-cycles.
	CyclesPerFrame  = 17556
	MCycleFrequency = 1048576
)

// Limiter blocks a FrameThrottle once per emulated frame.
type Limiter interface {
	// WaitForNextFrame returns when the next frame is due, immediately if
	// the schedule is already behind.
	WaitForNextFrame()
	Reset()
}

// TargetFPS is the DMG refresh rate, just under 60Hz.
func TargetFPS() float64 {
	return float64(MCycleFrequency) / float64(CyclesPerFrame)
}

// FrameDuration is the wall clock time of one emulated frame.
func FrameDuration() time.Duration {
	return time.Duration(float64(time.Second) / TargetFPS())
}
