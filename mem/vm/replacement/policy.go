// Package replacement provides the page replacement policies that pick which
// resident page to evict when the frame pool is full.
package replacement

import (
	"fmt"

	"github.com/sarchlab/vmsim/mem/vm"
)

// A Policy tracks the resident pages and decides which one to evict.
type Policy interface {
	// Kind tells which policy this is.
	Kind() vm.PolicyKind

	// OnLoad is called when a page is brought into a frame.
	OnLoad(page int)

	// OnAccess is called when a resident page is referenced.
	OnAccess(page int)

	// SelectVictim names the resident page to evict. It returns false if no
	// page is resident.
	SelectVictim() (int, bool)

	// OnEvict is called when a page leaves its frame.
	OnEvict(page int)

	// ReplacementCount returns how many selected victims have been evicted.
	ReplacementCount() uint64

	// Resident returns the tracked pages, next victim first.
	Resident() []int

	// Reset forgets all pages and zeroes the replacement count.
	Reset()
}

// New creates the policy of the given kind.
func New(kind vm.PolicyKind) (Policy, error) {
	switch kind {
	case vm.PolicyFIFO:
		return NewFIFO(), nil
	case vm.PolicyLRU:
		return NewLRU(), nil
	default:
		return nil, fmt.Errorf("%w: unknown policy %q",
			vm.ErrInvalidConfiguration, string(kind))
	}
}

// victimTracker counts the evictions that follow a victim selection.
type victimTracker struct {
	selected     int
	hasSelected  bool
	replacements uint64
}

func (v *victimTracker) markSelected(page int) {
	v.selected = page
	v.hasSelected = true
}

func (v *victimTracker) markEvicted(page int) {
	if v.hasSelected && v.selected == page {
		v.replacements++
	}

	v.hasSelected = false
}

func (v *victimTracker) ReplacementCount() uint64 {
	return v.replacements
}

func (v *victimTracker) reset() {
	*v = victimTracker{}
}
