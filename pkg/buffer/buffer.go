// Package buffer holds a bounded, ordered run of captured frames and
// the filenames they will be written to.
package buffer

import (
	"errors"
	"io"
)

// DefaultCapacity is the number of frames captured per run.
const DefaultCapacity = 100

// ErrFull is returned by Add once Capacity frames are stored.
var ErrFull = errors.New("buffer full")

// Slot pairs a frame with the filename generated when it was captured.
type Slot[F any] struct {
	Frame    F
	Filename string
}

// Buffer stores up to Capacity slots in capture order.
// Storage is allocated on the first Add, sized exactly to capacity. There is
// no wraparound and no eviction.
type Buffer[F any] struct {
	capacity int
	slots    []Slot[F]
}

// New creates an empty buffer. A capacity below 1 falls back to
// DefaultCapacity.
func New[F any](capacity int) *Buffer[F] {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Buffer[F]{capacity: capacity}
}

// Capacity returns the fixed maximum number of slots.
func (b *Buffer[F]) Capacity() int { return b.capacity }

// Len returns the number of stored slots.
func (b *Buffer[F]) Len() int { return len(b.slots) }

// Allocated reports whether slot storage has been created.
func (b *Buffer[F]) Allocated() bool { return b.slots != nil }

// Full reports whether no more slots can be stored.
func (b *Buffer[F]) Full() bool { return len(b.slots) >= b.capacity }

// Add stores frame and filename in the next free slot and returns its index.
func (b *Buffer[F]) Add(frame F, filename string) (int, error) {
	if b.slots == nil {
		b.slots = make([]Slot[F], 0, b.capacity)
	}
	if b.Full() {
		return -1, ErrFull
	}
	b.slots = append(b.slots, Slot[F]{Frame: frame, Filename: filename})
	return len(b.slots) - 1, nil
}

// At returns the slot at index i. It panics when i is out of range.
func (b *Buffer[F]) At(i int) Slot[F] {
	return b.slots[i]
}

// Slots returns the stored slots in capture order. The slice aliases the
// buffer and is only valid until Release.
func (b *Buffer[F]) Slots() []Slot[F] {
	return b.slots
}

// Release closes every frame that implements io.Closer and drops all slots.
// The first close error is returned; all frames are closed regardless.
func (b *Buffer[F]) Release() error {
	var first error
	for i := range b.slots {
		if c, ok := any(b.slots[i].Frame).(io.Closer); ok {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	b.slots = nil
	return first
}
