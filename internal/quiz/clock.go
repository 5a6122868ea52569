package quiz

import (
	"context"
	"time"
)

// CancelFunc stops a scheduled callback. Stopping does not guarantee the
// callback has not already started; the session's epoch check covers that
// window.
type CancelFunc func()

// Scheduler defers a callback by a duration. Production uses the runtime
// timer heap; tests substitute a manual scheduler to fire expiries by hand.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) CancelFunc
}

// TimerScheduler schedules with time.AfterFunc.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// RunClock drives session ticks once per interval until ctx is done. This is
// the only autonomous mutation source; OnTick self-gates during feedback and
// after completion, so the clock just keeps running.
func RunClock(ctx context.Context, s *Session, interval time.Duration, onTick func()) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.OnTick()
			if onTick != nil {
				onTick()
			}
		}
	}
}
