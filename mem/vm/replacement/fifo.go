package replacement

import (
	"github.com/sarchlab/vmsim/mem/vm"
)

// FIFO evicts the page that has been resident the longest. Accesses do not
// matter.
type FIFO struct {
	victimTracker

	queue []int
}

// NewFIFO creates an empty FIFO policy.
func NewFIFO() *FIFO {
	return &FIFO{}
}

// Kind returns vm.PolicyFIFO.
func (p *FIFO) Kind() vm.PolicyKind {
	return vm.PolicyFIFO
}

// OnLoad appends the page to the queue.
func (p *FIFO) OnLoad(page int) {
	if p.indexOf(page) >= 0 {
		return
	}

	p.queue = append(p.queue, page)
}

// OnAccess does nothing.
func (p *FIFO) OnAccess(int) {}

// SelectVictim returns the head of the queue.
func (p *FIFO) SelectVictim() (int, bool) {
	if len(p.queue) == 0 {
		return 0, false
	}

	p.markSelected(p.queue[0])

	return p.queue[0], true
}

// OnEvict removes the page from the queue.
func (p *FIFO) OnEvict(page int) {
	i := p.indexOf(page)
	if i < 0 {
		return
	}

	p.queue = append(p.queue[:i], p.queue[i+1:]...)
	p.markEvicted(page)
}

// Resident returns the pages in load order.
func (p *FIFO) Resident() []int {
	return append([]int(nil), p.queue...)
}

// Reset empties the queue.
func (p *FIFO) Reset() {
	p.queue = nil
	p.victimTracker.reset()
}

func (p *FIFO) indexOf(page int) int {
	for i, q := range p.queue {
		if q == page {
			return i
		}
	}

	return -1
}
