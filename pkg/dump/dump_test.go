package dump

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// steppingClock advances by step on every read so filenames are distinct.
type steppingClock struct {
	t    time.Time
	step time.Duration
}

func (c *steppingClock) Now() time.Time {
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

func newClock() *steppingClock {
	return &steppingClock{
		t:    time.Date(2024, 3, 7, 9, 5, 2, 7_000_000, time.Local),
		step: 33 * time.Millisecond,
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(nil, NewMockSink()); !errors.Is(err, ErrNoSource) {
		t.Errorf("Expected ErrNoSource, got %v", err)
	}
	if _, err := New(NewMockSource(), nil); !errors.Is(err, ErrNoSink) {
		t.Errorf("Expected ErrNoSink, got %v", err)
	}
	if _, err := New(NewMockSource(), NewMockSink(), WithCapacity(0)); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if _, err := New(NewMockSource(), NewMockSink(), WithMode("sideways")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for bad mode, got %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("Expected 640x480, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Capacity != 100 {
		t.Errorf("Expected capacity 100, got %d", cfg.Capacity)
	}
	if cfg.Mode != ModeBuffered {
		t.Errorf("Expected buffered mode, got %s", cfg.Mode)
	}
	if cfg.Dir != "/tmp" {
		t.Errorf("Expected /tmp, got %s", cfg.Dir)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("Expected default config to be valid, got %v", errs)
	}
}

func TestRun_BufferedCapacityThree(t *testing.T) {
	src := NewMockSource()
	sink := NewMockSink()
	clock := newClock()

	d, err := New(src, sink,
		WithCapacity(3),
		WithDir("/out"),
		WithLogger(quietLogger()),
		WithClock(clock.Now),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Writing must not start until the camera is released.
	sink.WriteFunc = func(f Frame, path string) error {
		if !src.Closed() {
			t.Errorf("Write of %s happened before the source was closed", path)
		}
		return nil
	}

	rep, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if src.Reads() != 3 {
		t.Errorf("Expected exactly 3 reads, got %d", src.Reads())
	}
	if rep.Captured != 3 || rep.Written != 3 {
		t.Errorf("Expected 3 captured and written, got %d/%d", rep.Captured, rep.Written)
	}
	if rep.Stopped {
		t.Error("Expected run to reach capacity")
	}
	if rep.RunID == "" {
		t.Error("Expected a run id")
	}

	writes := sink.Writes()
	seen := map[string]bool{}
	for _, w := range writes {
		if filepath.Dir(w) != "/out" || !strings.HasSuffix(w, ".png") {
			t.Errorf("Unexpected output path %q", w)
		}
		seen[w] = true
	}
	if len(seen) != 3 {
		t.Errorf("Expected 3 distinct filenames, got %v", writes)
	}
	// The elapsed timer and fps meter read the clock twice before the first frame.
	if writes[0] != filepath.Join("/out", "2024-03-07_09-05-02-073.png") {
		t.Errorf("Unexpected first filename %q", writes[0])
	}

	// Frames are written in capture order, annotated with their own filename.
	for i, f := range src.Frames() {
		if f.ID != i+1 {
			t.Errorf("Frame %d has id %d", i, f.ID)
		}
		if f.Annotated != writes[i] {
			t.Errorf("Frame %d annotated %q, written to %q", i, f.Annotated, writes[i])
		}
		if !f.Closed() {
			t.Errorf("Frame %d was not released", i)
		}
	}
	if w, h := src.Resolution(); w != 640 || h != 480 {
		t.Errorf("Expected 640x480 configured, got %dx%d", w, h)
	}
}

func TestRun_DirectMode(t *testing.T) {
	src := NewMockSource()
	sink := NewMockSink()
	clock := newClock()

	d, _ := New(src, sink,
		WithCapacity(5),
		WithMode(ModeDirect),
		WithLogger(quietLogger()),
		WithClock(clock.Now),
	)

	sink.WriteFunc = func(f Frame, path string) error {
		if src.Closed() {
			t.Errorf("Direct write of %s after source was closed", path)
		}
		return nil
	}

	rep, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if rep.Written != 5 {
		t.Errorf("Expected 5 written, got %d", rep.Written)
	}
	if len(sink.Annotations()) != 0 {
		t.Errorf("Expected no annotations in direct mode, got %v", sink.Annotations())
	}
	for i, f := range src.Frames() {
		if !f.Closed() {
			t.Errorf("Frame %d was not released", i)
		}
	}
}

func TestRun_OpenFailure(t *testing.T) {
	notOpened := errors.New("device busy")
	src := NewMockSource()
	src.OpenFunc = func() error { return notOpened }

	d, _ := New(src, NewMockSink(), WithLogger(quietLogger()))
	_, err := d.Run(context.Background())

	if !errors.Is(err, notOpened) {
		t.Errorf("Expected open error, got %v", err)
	}
	if src.Reads() != 0 {
		t.Errorf("Expected no reads, got %d", src.Reads())
	}
}

func TestRun_ReadFailure(t *testing.T) {
	broken := errors.New("empty frame")
	src := NewMockSource()
	calls := 0
	src.ReadFunc = func() (Frame, error) {
		calls++
		if calls == 2 {
			return nil, broken
		}
		return &MockFrame{ID: calls}, nil
	}
	sink := NewMockSink()

	d, _ := New(src, sink, WithCapacity(4), WithLogger(quietLogger()), WithClock(newClock().Now))
	rep, err := d.Run(context.Background())

	if !errors.Is(err, broken) {
		t.Errorf("Expected read error, got %v", err)
	}
	if !src.Closed() {
		t.Error("Expected source closed after failure")
	}
	if len(sink.Writes()) != 0 {
		t.Errorf("Expected no writes after a failed capture, got %v", sink.Writes())
	}
	if rep.Captured != 1 {
		t.Errorf("Expected 1 captured, got %d", rep.Captured)
	}
}

func TestRun_WriteFailure(t *testing.T) {
	full := errors.New("disk full")
	sink := NewMockSink()
	sink.WriteFunc = func(f Frame, path string) error { return full }

	d, _ := New(NewMockSource(), sink, WithCapacity(2), WithLogger(quietLogger()), WithClock(newClock().Now))
	_, err := d.Run(context.Background())

	if !errors.Is(err, full) {
		t.Errorf("Expected write error, got %v", err)
	}
}

func TestRun_PreviewKeyStops(t *testing.T) {
	src := NewMockSource()
	sink := NewMockSink()
	preview := &MockPreview{Keys: []int{-1, -1, 'q'}}

	d, _ := New(src, sink,
		WithCapacity(10),
		WithPreview(preview),
		WithLogger(quietLogger()),
		WithClock(newClock().Now),
	)
	rep, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !rep.Stopped {
		t.Error("Expected run to stop on key press")
	}
	if rep.Captured != 3 || src.Reads() != 3 {
		t.Errorf("Expected 3 frames captured, got %d (%d reads)", rep.Captured, src.Reads())
	}
	if preview.Shown() != 3 {
		t.Errorf("Expected 3 frames shown, got %d", preview.Shown())
	}
	if rep.Written != 3 {
		t.Errorf("Expected captured frames still written, got %d", rep.Written)
	}
}

func TestRun_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := NewMockSource()
	src.OnRead(func(n int) {
		if n == 2 {
			cancel()
		}
	})
	sink := NewMockSink()

	d, _ := New(src, sink, WithCapacity(10), WithLogger(quietLogger()), WithClock(newClock().Now))
	rep, err := d.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !rep.Stopped || rep.Captured != 2 {
		t.Errorf("Expected stop after 2 frames, got stopped=%v captured=%d", rep.Stopped, rep.Captured)
	}
	if len(sink.Writes()) != 2 {
		t.Errorf("Expected 2 writes, got %d", len(sink.Writes()))
	}
}

func TestRun_LogsFPSAndProgress(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, nil))

	d, _ := New(NewMockSource(), NewMockSink(),
		WithCapacity(20),
		WithLogger(logger),
		WithClock(newClock().Now),
	)
	if _, err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	logs := out.String()
	if got := strings.Count(logs, "moving average fps"); got != 2 {
		t.Errorf("Expected 2 fps reports, got %d", got)
	}
	if got := strings.Count(logs, "writing files"); got != 2 {
		t.Errorf("Expected 2 progress lines, got %d", got)
	}
}
