package dump

import "errors"

// Sentinel errors for run failures.
var (
	// ErrInvalidConfig is returned by New when Config.Validate fails.
	ErrInvalidConfig = errors.New("dump: invalid config")

	// ErrNoSource is returned by New without a frame source.
	ErrNoSource = errors.New("dump: frame source required")

	// ErrNoSink is returned by New without a frame sink.
	ErrNoSink = errors.New("dump: frame sink required")
)
