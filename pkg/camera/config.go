// Package camera wraps an OpenCV capture device, preview window and image
// writer behind explicitly owned handles.
package camera

import "fmt"

// Config holds capture device settings.
type Config struct {
	DeviceID  int `json:"device_id"` // OpenCV device index, 0 is the default camera
	Width     int `json:"width"`     // Frame width in pixels
	Height    int `json:"height"`    // Frame height in pixels
	Framerate int `json:"framerate"` // Requested FPS, 0 leaves the driver default
}

// Limits accepted by Validate.
const (
	MinWidth     = 160
	MinHeight    = 120
	MaxWidth     = 4096
	MaxHeight    = 2160
	MaxFramerate = 120
)

// DefaultConfig returns the default camera at 640x480.
func DefaultConfig() Config {
	return Config{
		DeviceID:  0,
		Width:     640,
		Height:    480,
		Framerate: 0,
	}
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.DeviceID < 0 {
		errors = append(errors, "device_id must not be negative")
	}
	if c.Width < MinWidth || c.Width > MaxWidth {
		errors = append(errors, fmt.Sprintf("width must be between %d and %d", MinWidth, MaxWidth))
	}
	if c.Height < MinHeight || c.Height > MaxHeight {
		errors = append(errors, fmt.Sprintf("height must be between %d and %d", MinHeight, MaxHeight))
	}
	if c.Framerate < 0 || c.Framerate > MaxFramerate {
		errors = append(errors, fmt.Sprintf("framerate must be 0 (driver default) or up to %d", MaxFramerate))
	}

	return errors
}
