package imgio

import (
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/teslashibe/camdump/pkg/dump"
)

var _ dump.Source = (*PatternSource)(nil)

// DefaultInterval paces synthetic frames at roughly 30 FPS.
const DefaultInterval = 33 * time.Millisecond

// PatternSource generates a moving test pattern: a diagonal gradient with a
// white bar that advances one column per frame.
type PatternSource struct {
	// Interval is the minimum time between frames. Zero disables pacing.
	Interval time.Duration

	mu     sync.Mutex
	open   bool
	width  int
	height int
	seq    int
	last   time.Time
	sleep  func(time.Duration)
}

// NewPatternSource creates a 640x480 source paced at DefaultInterval.
func NewPatternSource() *PatternSource {
	return &PatternSource{
		Interval: DefaultInterval,
		width:    640,
		height:   480,
		sleep:    time.Sleep,
	}
}

// Open implements dump.Source.
func (p *PatternSource) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = true
	p.seq = 0
	return nil
}

// Configure implements dump.Source.
func (p *PatternSource) Configure(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.width, p.height = width, height
	return nil
}

// Read implements dump.Source.
func (p *PatternSource) Read() (dump.Frame, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.open {
		return nil, ErrNotOpen
	}
	if p.Interval > 0 && !p.last.IsZero() {
		if wait := p.Interval - time.Since(p.last); wait > 0 {
			p.sleep(wait)
		}
	}
	p.last = time.Now()

	f := NewFrame(p.width, p.height)
	f.Seq = p.seq
	paint(f.RGBA, p.seq)
	p.seq++
	return f, nil
}

// Close implements dump.Source.
func (p *PatternSource) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = false
	return nil
}

func paint(img *image.RGBA, seq int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	bar := seq % w
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == bar {
				img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
				continue
			}
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: uint8((x + y + seq) % 256),
				A: 255,
			})
		}
	}
}
