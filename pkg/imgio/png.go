package imgio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/teslashibe/camdump/pkg/dump"
)

var _ dump.Sink = (*PNGWriter)(nil)

// PNGWriter encodes frames as PNG files and overlays text with a 7x13
// bitmap font.
type PNGWriter struct {
	Origin image.Point
	Color  color.Color
	Level  png.CompressionLevel
}

// NewPNGWriter creates a writer drawing green text at (10,20).
func NewPNGWriter() *PNGWriter {
	return &PNGWriter{
		Origin: image.Pt(10, 20),
		Color:  color.RGBA{G: 255, A: 255},
		Level:  png.BestSpeed,
	}
}

// Annotate draws text with its baseline at Origin.
func (w *PNGWriter) Annotate(f dump.Frame, text string) error {
	frame, err := asFrame(f)
	if err != nil {
		return err
	}
	d := &font.Drawer{
		Dst:  frame.RGBA,
		Src:  image.NewUniform(w.Color),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(w.Origin.X, w.Origin.Y),
	}
	d.DrawString(text)
	return nil
}

// Write encodes the frame to path.
func (w *PNGWriter) Write(f dump.Frame, path string) error {
	frame, err := asFrame(f)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	enc := png.Encoder{CompressionLevel: w.Level}
	if err := enc.Encode(file, frame.RGBA); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return file.Close()
}

func asFrame(f dump.Frame) (*Frame, error) {
	frame, ok := f.(*Frame)
	if !ok || frame == nil || frame.RGBA == nil {
		return nil, fmt.Errorf("%w: got %T", ErrNotImage, f)
	}
	return frame, nil
}
