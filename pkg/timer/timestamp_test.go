package timer

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"
)

var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}-\d{3}$`)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"example", time.Date(2024, 3, 7, 9, 5, 2, 7_000_000, time.Local), "2024-03-07_09-05-02-007"},
		{"zero ms", time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), "2024-01-01_00-00-00-000"},
		{"max ms", time.Date(2023, 12, 31, 23, 59, 59, 999_999_999, time.Local), "2023-12-31_23-59-59-999"},
		{"truncates", time.Date(2024, 6, 15, 12, 30, 45, 123_999_000, time.Local), "2024-06-15_12-30-45-123"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatTimestamp(tc.in); got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatTimestamp_ConvertsToLocal(t *testing.T) {
	in := time.Date(2024, 3, 7, 9, 5, 2, 7_000_000, time.UTC)
	want := FormatTimestamp(in.In(time.Local))

	if got := FormatTimestamp(in); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestTimestamp_Pattern(t *testing.T) {
	for i := 0; i < 50; i++ {
		ts := Timestamp()
		if !timestampPattern.MatchString(ts) {
			t.Fatalf("Timestamp %q does not match pattern", ts)
		}

		ms, err := strconv.Atoi(ts[len(ts)-3:])
		if err != nil {
			t.Fatalf("Milliseconds field not numeric in %q: %v", ts, err)
		}
		if ms < 0 || ms > 999 {
			t.Errorf("Milliseconds %d out of range in %q", ms, ts)
		}
	}
}

func TestTimestamp_FilenameSafe(t *testing.T) {
	ts := Timestamp()

	if strings.ContainsAny(ts, `/\:*?"<>| .`) {
		t.Errorf("Timestamp %q contains reserved characters", ts)
	}
	for _, r := range ts {
		if !(r >= '0' && r <= '9') && r != '-' && r != '_' {
			t.Errorf("Unexpected character %q in %q", r, ts)
		}
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2024, 3, 7, 9, 5, 2, 7_000_000, time.Local)
	got := Filename("/tmp", at)
	want := filepath.Join("/tmp", "2024-03-07_09-05-02-007.png")

	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
