package dump

import (
	"log/slog"
	"time"

	"github.com/teslashibe/camdump/pkg/buffer"
	"github.com/teslashibe/camdump/pkg/timer"
)

// Default run parameters.
const (
	DefaultDir           = "/tmp"
	DefaultWidth         = 640
	DefaultHeight        = 480
	DefaultProgressEvery = 10
	DefaultPreviewDelay  = 5 * time.Millisecond
)

// Mode selects when frames are encoded.
type Mode string

const (
	// ModeBuffered keeps frames in memory and writes them after capture.
	ModeBuffered Mode = "buffered"
	// ModeDirect writes each frame as soon as it is captured.
	ModeDirect Mode = "direct"
)

// Config holds the parameters of one capture run.
// Use functional options (WithXxx) to set these values.
type Config struct {
	// Capture
	Width    int
	Height   int
	Capacity int
	Mode     Mode

	// Output
	Dir string

	// Reporting
	FPSWindow     int
	ProgressEvery int

	// Preview is shown every captured frame when set.
	Preview      Preview
	PreviewDelay time.Duration

	// Observability
	Logger *slog.Logger

	// Clock used for filenames and frame rate; time.Now when nil.
	Now func() time.Time
}

// DefaultConfig returns the fixed run: 100 frames at 640x480, buffered,
// written under /tmp.
func DefaultConfig() Config {
	return Config{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Capacity:      buffer.DefaultCapacity,
		Mode:          ModeBuffered,
		Dir:           DefaultDir,
		FPSWindow:     timer.DefaultFPSWindow,
		ProgressEvery: DefaultProgressEvery,
		PreviewDelay:  DefaultPreviewDelay,
	}
}

// Option is a functional option for configuring a Dumper.
type Option func(*Config)

// WithResolution sets the requested capture resolution.
func WithResolution(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithCapacity sets how many frames are captured.
func WithCapacity(n int) Option {
	return func(c *Config) {
		c.Capacity = n
	}
}

// WithMode selects buffered or direct writing.
func WithMode(m Mode) Option {
	return func(c *Config) {
		c.Mode = m
	}
}

// WithDir sets the output directory.
func WithDir(dir string) Option {
	return func(c *Config) {
		c.Dir = dir
	}
}

// WithFPSWindow sets how many frames are averaged per FPS report.
func WithFPSWindow(n int) Option {
	return func(c *Config) {
		c.FPSWindow = n
	}
}

// WithProgressEvery sets how often write-out progress is logged.
func WithProgressEvery(n int) Option {
	return func(c *Config) {
		c.ProgressEvery = n
	}
}

// WithPreview shows each captured frame in p. A key press stops capture.
func WithPreview(p Preview) Option {
	return func(c *Config) {
		c.Preview = p
	}
}

// WithPreviewDelay sets how long the preview waits for a key per frame.
func WithPreviewDelay(d time.Duration) Option {
	return func(c *Config) {
		c.PreviewDelay = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// Validate checks the config and returns a list of problems, or nil.
func (c *Config) Validate() []string {
	var errs []string
	if c.Width < 1 || c.Height < 1 {
		errs = append(errs, "width and height must be positive")
	}
	if c.Capacity < 1 {
		errs = append(errs, "capacity must be at least 1")
	}
	if c.Mode != ModeBuffered && c.Mode != ModeDirect {
		errs = append(errs, "mode must be buffered or direct")
	}
	if c.Dir == "" {
		errs = append(errs, "output directory is required")
	}
	return errs
}
