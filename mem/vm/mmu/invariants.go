package mmu

import (
	"fmt"
	"sort"

	"github.com/sarchlab/vmsim/mem/vm"
)

// CheckConsistency verifies that the components agree with each other. It
// returns an error wrapping vm.ErrInconsistentStoreState at the first
// disagreement it finds.
func (e *Engine) CheckConsistency() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.mustBeConfigured(); err != nil {
		return err
	}

	checks := []func() error{
		e.checkFrames,
		e.checkPageTable,
		e.checkTLB,
		e.checkPolicy,
	}

	for _, check := range checks {
		if err := check(); err != nil {
			return fmt.Errorf("%w: %s", vm.ErrInconsistentStoreState, err)
		}
	}

	return nil
}

func (e *Engine) checkFrames() error {
	resident := 0

	for _, f := range e.pool.Frames() {
		if f.IsEmpty() {
			continue
		}

		resident++
		p := f.Occupant

		if !p.InMemory || p.FrameNumber != f.Number {
			return fmt.Errorf("frame %d holds %s", f.Number, p)
		}

		frame, valid := e.validFrameOf(p.Number)
		if !valid || frame != f.Number {
			return fmt.Errorf("frame %d holds page %d without a matching entry",
				f.Number, p.Number)
		}

		if e.store.Contains(p.Number) {
			return fmt.Errorf("page %d is both resident and stored", p.Number)
		}
	}

	if resident != e.pool.Size()-e.pool.FreeCount() {
		return fmt.Errorf("%d frames occupied but %d reported free",
			resident, e.pool.FreeCount())
	}

	return nil
}

func (e *Engine) checkPageTable() error {
	for _, entry := range e.table.Entries() {
		if !entry.Valid {
			continue
		}

		occupant, occupied := e.pool.OccupantOf(entry.Frame)
		if !occupied || occupant != entry.Page {
			return fmt.Errorf("page %d maps to frame %d, which it does not own",
				entry.Page, entry.Frame)
		}
	}

	return nil
}

func (e *Engine) checkTLB() error {
	if e.tlb.Len() > e.tlb.Capacity() {
		return fmt.Errorf("TLB holds %d entries, capacity %d",
			e.tlb.Len(), e.tlb.Capacity())
	}

	for _, entry := range e.tlb.Entries() {
		frame, valid := e.validFrameOf(entry.Page)
		if !valid || frame != entry.Frame {
			return fmt.Errorf("TLB maps page %d to frame %d without a valid entry",
				entry.Page, entry.Frame)
		}
	}

	return nil
}

func (e *Engine) checkPolicy() error {
	tracked := e.policy.Resident()
	sort.Ints(tracked)

	resident := []int{}
	for _, f := range e.pool.Frames() {
		if !f.IsEmpty() {
			resident = append(resident, f.Occupant.Number)
		}
	}

	sort.Ints(resident)

	if fmt.Sprint(tracked) != fmt.Sprint(resident) {
		return fmt.Errorf("policy tracks %v but %v are resident",
			tracked, resident)
	}

	return nil
}

func (e *Engine) validFrameOf(page int) (int, bool) {
	entry, found := e.table.Entry(page)
	if !found || !entry.Valid {
		return vm.NoFrame, false
	}

	return entry.Frame, true
}
