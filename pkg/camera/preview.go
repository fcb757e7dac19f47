package camera

import (
	"time"

	"gocv.io/x/gocv"

	"github.com/teslashibe/camdump/pkg/dump"
)

var _ dump.Preview = (*Preview)(nil)

// Preview is a HighGUI window showing captured frames.
type Preview struct {
	window *gocv.Window
}

// NewPreview opens a window titled name.
func NewPreview(name string) *Preview {
	return &Preview{window: gocv.NewWindow(name)}
}

// Show displays the frame.
func (p *Preview) Show(f dump.Frame) error {
	mat, err := asMat(f)
	if err != nil {
		return err
	}
	p.window.IMShow(*mat)
	return nil
}

// WaitKey pumps window events for up to d and returns the pressed key or -1.
func (p *Preview) WaitKey(d time.Duration) int {
	ms := int(d / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	return p.window.WaitKey(ms)
}

// Close destroys the window.
func (p *Preview) Close() error {
	return p.window.Close()
}
