// Package framepool models the physical frames. The occupant array in the
// pool is the only place that records which page lives in which frame.
package framepool

import (
	"fmt"

	"github.com/sarchlab/vmsim/mem/vm"
)

// A PageSink receives the pages that leave a frame.
type PageSink interface {
	Store(page *vm.Page)
}

// A Frame is one physical frame.
type Frame struct {
	Number   int
	Occupant *vm.Page
}

// IsEmpty tells if no page is loaded in the frame.
func (f Frame) IsEmpty() bool {
	return f.Occupant == nil
}

// FramePool is a fixed set of frames.
type FramePool struct {
	frames    []Frame
	sink      PageSink
	freeCount int
}

// New creates a pool with size empty frames. Evicted pages go to sink.
func New(size int, sink PageSink) (*FramePool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: frame count must be positive, got %d",
			vm.ErrInvalidConfiguration, size)
	}

	p := &FramePool{
		frames: make([]Frame, size),
		sink:   sink,
	}
	p.Clear()

	return p, nil
}

// Size returns the number of frames.
func (p *FramePool) Size() int {
	return len(p.frames)
}

// AllocateFree returns the lowest-numbered empty frame.
func (p *FramePool) AllocateFree() (int, bool) {
	for _, f := range p.frames {
		if f.IsEmpty() {
			return f.Number, true
		}
	}

	return vm.NoFrame, false
}

// Occupy loads page into an empty frame.
func (p *FramePool) Occupy(frame int, page *vm.Page) error {
	if err := p.frameMustBeInRange(frame); err != nil {
		return err
	}

	f := &p.frames[frame]
	if !f.IsEmpty() {
		return fmt.Errorf("%w: frame %d holds page %d",
			vm.ErrFrameOccupied, frame, f.Occupant.Number)
	}

	if page.InMemory {
		return fmt.Errorf("%w: page %d is in frame %d",
			vm.ErrPageAlreadyResident, page.Number, page.FrameNumber)
	}

	f.Occupant = page
	page.InMemory = true
	page.FrameNumber = frame
	page.LoadCount++
	p.freeCount--

	return nil
}

// Evict empties an occupied frame, hands its page to the sink and returns the
// page number.
func (p *FramePool) Evict(frame int) (int, error) {
	if err := p.frameMustBeInRange(frame); err != nil {
		return vm.NoFrame, err
	}

	f := &p.frames[frame]
	if f.IsEmpty() {
		return vm.NoFrame, fmt.Errorf("%w: frame %d", vm.ErrFrameEmpty, frame)
	}

	page := f.Occupant
	f.Occupant = nil
	page.InMemory = false
	page.FrameNumber = vm.NoFrame
	p.freeCount++

	if p.sink != nil {
		p.sink.Store(page)
	}

	return page.Number, nil
}

// OccupantOf returns the number of the page in a frame.
func (p *FramePool) OccupantOf(frame int) (int, bool) {
	if frame < 0 || frame >= len(p.frames) || p.frames[frame].IsEmpty() {
		return vm.NoFrame, false
	}

	return p.frames[frame].Occupant.Number, true
}

// IsFull tells if no frame is empty.
func (p *FramePool) IsFull() bool {
	return p.freeCount == 0
}

// FreeCount returns the number of empty frames.
func (p *FramePool) FreeCount() int {
	return p.freeCount
}

// ResidentCount returns the number of occupied frames.
func (p *FramePool) ResidentCount() int {
	return len(p.frames) - p.freeCount
}

// Frames returns a copy of the frames, ordered by number.
func (p *FramePool) Frames() []Frame {
	frames := make([]Frame, len(p.frames))
	copy(frames, p.frames)

	return frames
}

// Clear empties every frame without notifying the sink.
func (p *FramePool) Clear() {
	for i := range p.frames {
		if occupant := p.frames[i].Occupant; occupant != nil {
			occupant.InMemory = false
			occupant.FrameNumber = vm.NoFrame
		}

		p.frames[i] = Frame{Number: i}
	}

	p.freeCount = len(p.frames)
}

func (p *FramePool) frameMustBeInRange(frame int) error {
	if frame < 0 || frame >= len(p.frames) {
		return fmt.Errorf("%w: frame %d, pool has %d frames",
			vm.ErrFrameOutOfRange, frame, len(p.frames))
	}

	return nil
}
