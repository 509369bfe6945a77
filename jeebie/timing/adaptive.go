package timing

import (
	"log/slog"
	"time"
)

// maxLag is how far behind schedule the limiter may fall before it gives up
// catching up and restarts the schedule from now.
const maxLag = 5 * FrameDurationApprox

// FrameDurationApprox is FrameDuration rounded to a constant, for thresholds.
const FrameDurationApprox = 16742 * time.Microsecond

// AdaptiveLimiter keeps an absolute frame schedule, so that oversleeping on
// one frame is made up on the next ones.
type AdaptiveLimiter struct {
	frameTime time.Duration
	next      time.Time
	frames    int64

	now   func() time.Time
	sleep func(time.Duration)
}

func NewAdaptiveLimiter() *AdaptiveLimiter {
	return newAdaptiveLimiter(time.Now, time.Sleep)
}

func newAdaptiveLimiter(now func() time.Time, sleep func(time.Duration)) *AdaptiveLimiter {
	return &AdaptiveLimiter{
		frameTime: FrameDuration(),
		next:      now(),
		now:       now,
		sleep:     sleep,
	}
}

func (a *AdaptiveLimiter) WaitForNextFrame() {
	now := a.now()
	wait := a.next.Sub(now)

	switch {
	case wait > 0:
		a.sleep(wait)
	case wait < -maxLag:
		slog.Debug("Frame pacing fell behind, resyncing", "behind_ms", (-wait).Milliseconds(), "frames", a.frames)
		a.next = now
	}

	a.next = a.next.Add(a.frameTime)
	a.frames++
}

func (a *AdaptiveLimiter) Reset() {
	a.next = a.now()
	a.frames = 0
}

// Frames returns the number of frames waited for since the last Reset.
func (a *AdaptiveLimiter) Frames() int64 {
	return a.frames
}
