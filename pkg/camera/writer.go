package camera

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/teslashibe/camdump/pkg/dump"
)

var _ dump.Sink = (*MatWriter)(nil)

// Overlay styling for annotated frames.
var (
	OverlayOrigin = image.Pt(10, 20)
	OverlayColor  = color.RGBA{R: 0, G: 255, B: 0, A: 0}
)

// MatWriter writes OpenCV frames with IMWrite. The format follows the file
// extension.
type MatWriter struct {
	Font      gocv.HersheyFont
	Scale     float64
	Thickness int
}

// NewMatWriter creates a writer using a small plain Hershey font.
func NewMatWriter() *MatWriter {
	return &MatWriter{
		Font:      gocv.FontHersheyPlain,
		Scale:     1,
		Thickness: 1,
	}
}

// Annotate draws text in the top left corner of the frame.
func (w *MatWriter) Annotate(f dump.Frame, text string) error {
	mat, err := asMat(f)
	if err != nil {
		return err
	}
	gocv.PutText(mat, text, OverlayOrigin, w.Font, w.Scale, OverlayColor, w.Thickness)
	return nil
}

// Write encodes the frame to path.
func (w *MatWriter) Write(f dump.Frame, path string) error {
	mat, err := asMat(f)
	if err != nil {
		return err
	}
	if ok := gocv.IMWrite(path, *mat); !ok {
		return fmt.Errorf("%w: %s", ErrWriteFailed, path)
	}
	return nil
}

func asMat(f dump.Frame) (*gocv.Mat, error) {
	mat, ok := f.(*gocv.Mat)
	if !ok || mat == nil {
		return nil, fmt.Errorf("%w: got %T", ErrNotMat, f)
	}
	return mat, nil
}
