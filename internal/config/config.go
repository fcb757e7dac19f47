// Package config provides run settings for the camdump command.
package config

import (
	"os"
	"strconv"
)

// Defaults for a run. With no flags or environment camdump captures 100
// frames from camera 0 at 640x480 and writes them under /tmp.
const (
	DefaultDevice   = 0
	DefaultWidth    = 640
	DefaultHeight   = 480
	DefaultFrames   = 100
	DefaultOutDir   = "/tmp"
	DefaultLogLevel = "info"
)

// Settings is the resolved configuration of one run.
type Settings struct {
	Device    int
	Width     int
	Height    int
	Frames    int
	OutDir    string
	Direct    bool
	Preview   bool
	Synthetic bool
	LogLevel  string
}

// Defaults returns the fixed run settings.
func Defaults() Settings {
	return Settings{
		Device:   Device(DefaultDevice),
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Frames:   DefaultFrames,
		OutDir:   OutDir(DefaultOutDir),
		LogLevel: LogLevel(DefaultLogLevel),
	}
}

// OutDir returns the output directory from CAMDUMP_OUT env var.
// Falls back to the provided default if not set.
func OutDir(defaultDir string) string {
	if dir := os.Getenv("CAMDUMP_OUT"); dir != "" {
		return dir
	}
	return defaultDir
}

// Device returns the camera index from CAMDUMP_DEVICE env var.
// Falls back to the provided default if not set or not a number.
func Device(defaultDevice int) int {
	if v := os.Getenv("CAMDUMP_DEVICE"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			return id
		}
	}
	return defaultDevice
}

// LogLevel returns the log level from LOG_LEVEL env var or the default.
func LogLevel(defaultLevel string) string {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		return level
	}
	return defaultLevel
}
