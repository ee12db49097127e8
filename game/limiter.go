package game

import (
	"context"
	"time"
)

// FrameLimiter admits at most one frame per interval.
type FrameLimiter struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

// NewFrameLimiter creates a limiter for the given frame rate.
func NewFrameLimiter(fps int) *FrameLimiter {
	if fps < 1 {
		fps = 1
	}
	return &FrameLimiter{
		interval: time.Second / time.Duration(fps),
		now:      time.Now,
	}
}

// Interval returns the minimum time between admitted frames.
func (l *FrameLimiter) Interval() time.Duration {
	return l.interval
}

// Admit reports whether a frame may run now and, if so, records it.
func (l *FrameLimiter) Admit() bool {
	now := l.now()
	if !l.last.IsZero() && now.Sub(l.last) < l.interval {
		return false
	}
	l.last = now
	return true
}

// Wait blocks until the next frame is admitted or ctx is done.
func (l *FrameLimiter) Wait(ctx context.Context) error {
	for !l.Admit() {
		remaining := l.interval - l.now().Sub(l.last)
		if remaining <= 0 {
			continue
		}
		timer := time.NewTimer(remaining)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}
