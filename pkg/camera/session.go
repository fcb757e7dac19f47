package camera

import (
	"fmt"
	"log/slog"
	"sync"

	"gocv.io/x/gocv"

	"github.com/teslashibe/camdump/pkg/dump"
)

var _ dump.Source = (*Session)(nil)

// Session owns one OpenCV capture device. It is opened, configured, read
// and closed explicitly; nothing happens on construction.
type Session struct {
	config  Config
	capture *gocv.VideoCapture
	log     *slog.Logger
	mu      sync.Mutex
}

// NewSession creates a session for cfg.DeviceID. The device is not opened.
func NewSession(cfg Config) *Session {
	return &Session{
		config: cfg,
		log:    slog.Default().With("device", cfg.DeviceID),
	}
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// IsOpen reports whether the device is open.
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capture != nil
}

// Open acquires the capture device.
func (s *Session) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.capture != nil {
		return nil
	}

	capture, err := gocv.OpenVideoCapture(s.config.DeviceID)
	if err != nil {
		return fmt.Errorf("%w: device %d: %v", ErrNotOpened, s.config.DeviceID, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return fmt.Errorf("%w: device %d", ErrNotOpened, s.config.DeviceID)
	}

	s.capture = capture
	s.log.Debug("camera opened")
	return nil
}

// Configure requests a resolution from the driver. The driver may pick the
// nearest mode it supports; the actual size is logged when it differs.
func (s *Session) Configure(width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.config
	cfg.Width = width
	cfg.Height = height
	if errs := cfg.Validate(); len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	if s.capture == nil {
		return ErrNotOpened
	}

	s.capture.Set(gocv.VideoCaptureFrameWidth, float64(width))
	s.capture.Set(gocv.VideoCaptureFrameHeight, float64(height))
	if cfg.Framerate > 0 {
		s.capture.Set(gocv.VideoCaptureFPS, float64(cfg.Framerate))
	}
	s.config = cfg

	gotW := int(s.capture.Get(gocv.VideoCaptureFrameWidth))
	gotH := int(s.capture.Get(gocv.VideoCaptureFrameHeight))
	if gotW != width || gotH != height {
		s.log.Warn("driver picked a different resolution",
			"requested", fmt.Sprintf("%dx%d", width, height),
			"actual", fmt.Sprintf("%dx%d", gotW, gotH))
	}
	return nil
}

// Read grabs the next frame. The returned *gocv.Mat is owned by the caller.
func (s *Session) Read() (dump.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.capture == nil {
		return nil, ErrNotOpened
	}

	mat := gocv.NewMat()
	if ok := s.capture.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		return nil, ErrEmptyFrame
	}
	return &mat, nil
}

// Close releases the device. It is safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.capture == nil {
		return nil
	}
	err := s.capture.Close()
	s.capture = nil
	s.log.Debug("camera released")
	return err
}
