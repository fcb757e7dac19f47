// Package dump runs a bounded capture: it pulls frames from a camera, keeps
// them with their timestamped filenames, and writes them out as images.
//
// Example usage:
//
//	cam := camera.NewSession(camera.DefaultConfig())
//	d, _ := dump.New(cam, camera.NewMatWriter(),
//	    dump.WithCapacity(100),
//	    dump.WithDir("/tmp"),
//	)
//	report, err := d.Run(ctx)
package dump

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/teslashibe/camdump/pkg/buffer"
	"github.com/teslashibe/camdump/pkg/timer"
)

// Frame is one captured image. Close releases its memory.
type Frame interface {
	Close() error
}

// Source produces frames from a capture device.
type Source interface {
	// Open acquires the device. An error means the camera is unavailable.
	Open() error

	// Configure requests a capture resolution.
	Configure(width, height int) error

	// Read returns the next frame. The caller owns the frame.
	Read() (Frame, error)

	// Close releases the device.
	Close() error
}

// Sink encodes frames to files.
type Sink interface {
	// Annotate burns text into the frame.
	Annotate(f Frame, text string) error

	// Write encodes the frame to path.
	Write(f Frame, path string) error
}

// Preview displays frames while capturing.
type Preview interface {
	// Show displays the frame.
	Show(f Frame) error

	// WaitKey waits up to d for a key press and returns the key code,
	// or -1 when no key was pressed.
	WaitKey(d time.Duration) int
}

// Report summarizes a run.
type Report struct {
	RunID          string
	Mode           Mode
	Captured       int
	Written        int
	Stopped        bool // capture ended before capacity (key press or cancel)
	CaptureSeconds float64
	Files          []string
}

// Dumper owns one capture run.
type Dumper struct {
	cfg  Config
	src  Source
	sink Sink
	log  *slog.Logger
	now  func() time.Time
}

// New creates a Dumper reading from src and writing through sink.
func New(src Source, sink Sink, opts ...Option) (*Dumper, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	if sink == nil {
		return nil, ErrNoSink
	}

	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, errs)
	}

	d := &Dumper{
		cfg:  cfg,
		src:  src,
		sink: sink,
		log:  cfg.Logger,
		now:  cfg.Now,
	}
	if d.log == nil {
		d.log = slog.Default()
	}
	if d.now == nil {
		d.now = time.Now
	}
	return d, nil
}

// Config returns the effective configuration.
func (d *Dumper) Config() Config {
	return d.cfg
}

// Run opens the source, captures up to Capacity frames, closes the source
// and then writes out whatever was buffered. Cancelling ctx or pressing a
// key in the preview stops capture early; frames already captured are
// still written.
func (d *Dumper) Run(ctx context.Context) (Report, error) {
	rep := Report{
		RunID: uuid.New().String(),
		Mode:  d.cfg.Mode,
	}
	log := d.log.With("run_id", rep.RunID)

	if err := d.src.Open(); err != nil {
		return rep, fmt.Errorf("open camera: %w", err)
	}
	if err := d.src.Configure(d.cfg.Width, d.cfg.Height); err != nil {
		d.src.Close()
		return rep, fmt.Errorf("configure camera: %w", err)
	}
	log.Info("capturing",
		"width", d.cfg.Width,
		"height", d.cfg.Height,
		"frames", d.cfg.Capacity,
		"mode", d.cfg.Mode,
		"dir", d.cfg.Dir)
	if d.cfg.Mode == ModeDirect {
		log.Info("not using buffers, encoding on the fly")
	}

	buf := buffer.New[Frame](d.cfg.Capacity)
	err := d.capture(ctx, log, buf, &rep)
	if cerr := d.src.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close camera: %w", cerr)
	}
	if err != nil {
		buf.Release()
		return rep, err
	}

	err = d.flush(log, buf, &rep)
	if rerr := buf.Release(); rerr != nil && err == nil {
		err = fmt.Errorf("release frames: %w", rerr)
	}
	if err != nil {
		return rep, err
	}

	log.Info("done",
		"captured", rep.Captured,
		"written", rep.Written,
		"stopped", rep.Stopped,
		"capture_seconds", rep.CaptureSeconds)
	return rep, nil
}

func (d *Dumper) capture(ctx context.Context, log *slog.Logger, buf *buffer.Buffer[Frame], rep *Report) error {
	elapsed := timer.NewElapsedTimerWithClock(d.now)
	fps := timer.NewFPSMeter(d.cfg.FPSWindow, d.now)
	defer func() { rep.CaptureSeconds = elapsed.ElapsedSeconds() }()

	for rep.Captured < d.cfg.Capacity {
		if ctx.Err() != nil {
			log.Warn("capture cancelled", "captured", rep.Captured)
			rep.Stopped = true
			return nil
		}

		frame, err := d.src.Read()
		if err != nil {
			return fmt.Errorf("read frame %d: %w", rep.Captured, err)
		}
		filename := timer.Filename(d.cfg.Dir, d.now())

		if d.cfg.Mode == ModeDirect {
			if err := d.sink.Write(frame, filename); err != nil {
				frame.Close()
				return fmt.Errorf("write %s: %w", filename, err)
			}
			rep.Written++
			rep.Files = append(rep.Files, filename)
		} else {
			if !buf.Allocated() {
				log.Debug("creating buffers", "capacity", buf.Capacity())
			}
			if _, err := buf.Add(frame, filename); err != nil {
				frame.Close()
				return fmt.Errorf("buffer frame %d: %w", rep.Captured, err)
			}
		}
		rep.Captured++

		if rate, ok := fps.Tick(); ok {
			log.Info("moving average fps", "fps", rate, "frames", rep.Captured)
		}

		stop, err := d.preview(frame)
		if d.cfg.Mode == ModeDirect {
			frame.Close()
		}
		if err != nil {
			return fmt.Errorf("preview: %w", err)
		}
		if stop {
			log.Info("key pressed, stopping capture", "captured", rep.Captured)
			rep.Stopped = true
			return nil
		}
	}
	return nil
}

// preview shows frame and reports whether a key was pressed.
func (d *Dumper) preview(frame Frame) (bool, error) {
	if d.cfg.Preview == nil {
		return false, nil
	}
	if err := d.cfg.Preview.Show(frame); err != nil {
		return false, err
	}
	return d.cfg.Preview.WaitKey(d.cfg.PreviewDelay) >= 0, nil
}

func (d *Dumper) flush(log *slog.Logger, buf *buffer.Buffer[Frame], rep *Report) error {
	total := buf.Len()
	for i, slot := range buf.Slots() {
		if d.cfg.ProgressEvery > 0 && i%d.cfg.ProgressEvery == 0 {
			log.Info("writing files", "written", i, "total", total)
		}
		if err := d.sink.Annotate(slot.Frame, slot.Filename); err != nil {
			return fmt.Errorf("annotate %s: %w", slot.Filename, err)
		}
		if err := d.sink.Write(slot.Frame, slot.Filename); err != nil {
			return fmt.Errorf("write %s: %w", slot.Filename, err)
		}
		rep.Written++
		rep.Files = append(rep.Files, slot.Filename)
	}
	return nil
}
