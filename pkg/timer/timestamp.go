package timer

import (
	"fmt"
	"path/filepath"
	"time"
)

// TimestampLayout is the date and time part of a timestamp, to the second.
// Milliseconds are appended separately as "-mmm".
const TimestampLayout = "2006-01-02_15-04-05"

// Extension is the image file extension used for frame files.
const Extension = ".png"

// Timestamp returns the current local time as YYYY-MM-DD_HH-MM-SS-mmm.
// Every character is a digit, '-' or '_', so the value can be used as a
// path component on any platform.
func Timestamp() string {
	return FormatTimestamp(time.Now())
}

// FormatTimestamp formats t in local time as YYYY-MM-DD_HH-MM-SS-mmm.
// Milliseconds are truncated from microseconds, never rounded.
func FormatTimestamp(t time.Time) string {
	t = t.Local()
	ms := (t.Nanosecond() / 1000) / 1000
	return fmt.Sprintf("%s-%03d", t.Format(TimestampLayout), ms)
}

// Filename returns dir/<timestamp>.png for the instant t.
func Filename(dir string, t time.Time) string {
	return filepath.Join(dir, FormatTimestamp(t)+Extension)
}
