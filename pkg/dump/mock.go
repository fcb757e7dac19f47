package dump

import (
	"errors"
	"sync"
	"time"
)

// MockFrame is a Frame that records whether it was closed.
type MockFrame struct {
	ID        int
	Annotated string
	closed    bool
}

// Close marks the frame closed.
func (f *MockFrame) Close() error {
	f.closed = true
	return nil
}

// Closed reports whether Close was called.
func (f *MockFrame) Closed() bool { return f.closed }

// MockSource implements Source for testing.
// Function fields override the default behavior when set.
type MockSource struct {
	OpenFunc      func() error
	ConfigureFunc func(width, height int) error
	ReadFunc      func() (Frame, error)

	mu        sync.Mutex
	opened    bool
	closed    bool
	reads     int
	width     int
	height    int
	frames    []*MockFrame
	afterRead func(n int)
}

// NewMockSource creates a source that yields a new MockFrame on every read.
func NewMockSource() *MockSource {
	return &MockSource{}
}

// Open implements Source.
func (m *MockSource) Open() error {
	if m.OpenFunc != nil {
		if err := m.OpenFunc(); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.opened = true
	m.mu.Unlock()
	return nil
}

// Configure implements Source.
func (m *MockSource) Configure(width, height int) error {
	if m.ConfigureFunc != nil {
		return m.ConfigureFunc(width, height)
	}
	m.mu.Lock()
	m.width, m.height = width, height
	m.mu.Unlock()
	return nil
}

// Read implements Source.
func (m *MockSource) Read() (Frame, error) {
	m.mu.Lock()
	if !m.opened || m.closed {
		m.mu.Unlock()
		return nil, errors.New("mock: source not open")
	}
	m.reads++
	n := m.reads
	hook := m.afterRead
	m.mu.Unlock()

	if hook != nil {
		defer hook(n)
	}
	if m.ReadFunc != nil {
		return m.ReadFunc()
	}

	f := &MockFrame{ID: n}
	m.mu.Lock()
	m.frames = append(m.frames, f)
	m.mu.Unlock()
	return f, nil
}

// Close implements Source.
func (m *MockSource) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

// OnRead registers a hook called after the nth read returns.
func (m *MockSource) OnRead(hook func(n int)) {
	m.mu.Lock()
	m.afterRead = hook
	m.mu.Unlock()
}

// Reads returns the number of Read calls.
func (m *MockSource) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Resolution returns the last configured resolution.
func (m *MockSource) Resolution() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

// Frames returns the frames produced by default reads.
func (m *MockSource) Frames() []*MockFrame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*MockFrame(nil), m.frames...)
}

// MockSink implements Sink for testing and records every call.
type MockSink struct {
	WriteFunc func(f Frame, path string) error

	mu     sync.Mutex
	writes []string
	notes  []string
}

// NewMockSink creates a sink that accepts every write.
func NewMockSink() *MockSink {
	return &MockSink{}
}

// Annotate implements Sink.
func (m *MockSink) Annotate(f Frame, text string) error {
	if mf, ok := f.(*MockFrame); ok {
		mf.Annotated = text
	}
	m.mu.Lock()
	m.notes = append(m.notes, text)
	m.mu.Unlock()
	return nil
}

// Write implements Sink.
func (m *MockSink) Write(f Frame, path string) error {
	if m.WriteFunc != nil {
		if err := m.WriteFunc(f, path); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.writes = append(m.writes, path)
	m.mu.Unlock()
	return nil
}

// Writes returns the written paths in order.
func (m *MockSink) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.writes...)
}

// Annotations returns the annotation texts in order.
func (m *MockSink) Annotations() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.notes...)
}

// MockPreview implements Preview for testing.
// Keys are returned in order; once exhausted WaitKey returns -1.
type MockPreview struct {
	Keys []int

	shown int
}

// Show implements Preview.
func (m *MockPreview) Show(f Frame) error {
	m.shown++
	return nil
}

// WaitKey implements Preview.
func (m *MockPreview) WaitKey(d time.Duration) int {
	if len(m.Keys) == 0 {
		return -1
	}
	k := m.Keys[0]
	m.Keys = m.Keys[1:]
	return k
}

// Shown returns how many frames were displayed.
func (m *MockPreview) Shown() int { return m.shown }
