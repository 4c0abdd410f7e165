package marginalia

import "time"

// CancelFunc cancels a scheduled callback. Calling it after the callback
// has fired is a no-op.
type CancelFunc func()

// Scheduler defers a callback by a delay. The popup controller uses it for
// its show debounce; tests substitute a manually fired implementation.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) CancelFunc
}

// TimerScheduler schedules callbacks on the runtime's timers.
type TimerScheduler struct{}

// AfterFunc schedules fn after d using time.AfterFunc.
func (TimerScheduler) AfterFunc(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
