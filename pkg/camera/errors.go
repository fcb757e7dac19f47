package camera

import "errors"

// Sentinel errors for device and encoder failures.
var (
	// ErrNotOpened is returned when the capture device cannot be opened.
	ErrNotOpened = errors.New("camera: device not opened")

	// ErrEmptyFrame is returned when the device yields no image.
	ErrEmptyFrame = errors.New("camera: empty frame")

	// ErrWriteFailed is returned when OpenCV cannot encode or write a file.
	ErrWriteFailed = errors.New("camera: image write failed")

	// ErrNotMat is returned when a frame did not come from this package.
	ErrNotMat = errors.New("camera: frame is not an OpenCV Mat")
)
