// Package imgio is a pure-Go frame backend: a test-pattern source and a PNG
// writer with a bitmap-font overlay. It lets camdump run without a camera
// or OpenCV window.
package imgio

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
)

// Sentinel errors.
var (
	ErrNotOpen     = errors.New("imgio: source not open")
	ErrNotImage    = errors.New("imgio: frame is not an imgio frame")
	ErrInvalidSize = errors.New("imgio: invalid frame size")
)

// Frame is an in-memory RGBA frame.
type Frame struct {
	*image.RGBA
	Seq int
}

// NewFrame allocates a black frame.
func NewFrame(width, height int) *Frame {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return &Frame{RGBA: img}
}

// Close drops the pixel buffer.
func (f *Frame) Close() error {
	f.RGBA = nil
	return nil
}
