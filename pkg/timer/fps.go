package timer

import "time"

// DefaultFPSWindow is how many frames are averaged per FPS report.
const DefaultFPSWindow = 10

// FPSMeter reports a moving average frame rate every Window frames.
// After each report the underlying timer is reset.
type FPSMeter struct {
	Window int

	timer  *ElapsedTimer
	frames int
}

// NewFPSMeter creates a meter averaging over window frames.
// A window below 1 falls back to DefaultFPSWindow.
func NewFPSMeter(window int, now func() time.Time) *FPSMeter {
	if window < 1 {
		window = DefaultFPSWindow
	}
	if now == nil {
		now = time.Now
	}
	return &FPSMeter{
		Window: window,
		timer:  NewElapsedTimerWithClock(now),
	}
}

// Tick records one frame. It returns the averaged rate and true once every
// Window frames, otherwise 0 and false.
func (m *FPSMeter) Tick() (float64, bool) {
	m.frames++
	if m.frames%m.Window != 0 {
		return 0, false
	}
	elapsed := m.timer.ElapsedSeconds()
	m.timer.Reset()
	if elapsed <= 0 {
		return 0, true
	}
	return float64(m.Window) / elapsed, true
}

// Frames returns the number of frames recorded so far.
func (m *FPSMeter) Frames() int {
	return m.frames
}
