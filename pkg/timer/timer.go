// Package timer provides wall-clock helpers for the capture loop:
// an elapsed-seconds timer, a filename-safe timestamp and an FPS meter.
package timer

import "time"

// ElapsedTimer measures wall-clock time since construction or the last Reset.
//
// The wall clock is not monotonic. If the system clock is stepped backwards
// between Reset and ElapsedSeconds the result can be negative; callers treat
// that as a valid reading.
type ElapsedTimer struct {
	start time.Time
	now   func() time.Time
}

// NewElapsedTimer creates a timer started at the current wall-clock time.
func NewElapsedTimer() *ElapsedTimer {
	return NewElapsedTimerWithClock(time.Now)
}

// NewElapsedTimerWithClock creates a timer that reads time from now.
func NewElapsedTimerWithClock(now func() time.Time) *ElapsedTimer {
	t := &ElapsedTimer{now: now}
	t.Reset()
	return t
}

// Reset makes the current wall-clock time the new reference point.
func (t *ElapsedTimer) Reset() {
	t.start = wall(t.now())
}

// ElapsedSeconds returns the seconds since the reference point with
// microsecond resolution. It does not reset the timer.
func (t *ElapsedTimer) ElapsedSeconds() float64 {
	end := wall(t.now())
	sec := end.Unix() - t.start.Unix()
	usec := int64(end.Nanosecond()/1000) - int64(t.start.Nanosecond()/1000)
	return float64(sec) + float64(usec)/1e6
}

// wall drops the monotonic reading so differences follow the system clock.
func wall(t time.Time) time.Time {
	return t.Round(0)
}
