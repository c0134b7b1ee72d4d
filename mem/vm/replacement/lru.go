package replacement

import (
	"sort"

	"github.com/sarchlab/vmsim/mem/vm"
)

// A Clock provides the timestamps LRU orders pages by. Successive calls must
// not go backwards.
type Clock interface {
	Now() uint64
}

// LogicalClock ticks once every time it is read.
type LogicalClock struct {
	ticks uint64
}

// Now advances the clock and returns the new time.
func (c *LogicalClock) Now() uint64 {
	c.ticks++
	return c.ticks
}

// LRU evicts the page whose last access is the oldest. Pages touched at the
// same time are ordered by page number.
type LRU struct {
	victimTracker

	clock      Clock
	lastAccess map[int]uint64
}

// NewLRU creates an LRU policy driven by a LogicalClock.
func NewLRU() *LRU {
	return NewLRUWithClock(&LogicalClock{})
}

// NewLRUWithClock creates an LRU policy driven by the given clock.
func NewLRUWithClock(clock Clock) *LRU {
	return &LRU{
		clock:      clock,
		lastAccess: make(map[int]uint64),
	}
}

// Kind returns vm.PolicyLRU.
func (p *LRU) Kind() vm.PolicyKind {
	return vm.PolicyLRU
}

// OnLoad stamps the page as just used.
func (p *LRU) OnLoad(page int) {
	p.lastAccess[page] = p.clock.Now()
}

// OnAccess stamps a resident page as just used.
func (p *LRU) OnAccess(page int) {
	if _, ok := p.lastAccess[page]; !ok {
		return
	}

	p.lastAccess[page] = p.clock.Now()
}

// SelectVictim returns the least recently used page.
func (p *LRU) SelectVictim() (int, bool) {
	order := p.Resident()
	if len(order) == 0 {
		return 0, false
	}

	p.markSelected(order[0])

	return order[0], true
}

// OnEvict forgets the page.
func (p *LRU) OnEvict(page int) {
	if _, ok := p.lastAccess[page]; !ok {
		return
	}

	delete(p.lastAccess, page)
	p.markEvicted(page)
}

// Resident returns the pages from least to most recently used.
func (p *LRU) Resident() []int {
	pages := make([]int, 0, len(p.lastAccess))
	for page := range p.lastAccess {
		pages = append(pages, page)
	}

	sort.Slice(pages, func(i, j int) bool {
		ti, tj := p.lastAccess[pages[i]], p.lastAccess[pages[j]]
		if ti != tj {
			return ti < tj
		}

		return pages[i] < pages[j]
	})

	return pages
}

// Reset forgets every page. The clock keeps running.
func (p *LRU) Reset() {
	p.lastAccess = make(map[int]uint64)
	p.victimTracker.reset()
}
