// Package tlb provides the translation lookaside buffer of the engine.
package tlb

import (
	"fmt"

	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/mem/vm/tlb/internal"
)

// An Entry is one cached page to frame translation.
type Entry struct {
	Page  int `json:"page"`
	Frame int `json:"frame"`
}

// A TLB caches a bounded number of translations, evicting the least recently
// used one when it runs out of room.
type TLB struct {
	capacity int
	set      internal.Set

	accesses uint64
	hits     uint64
}

// New creates a TLB that holds at most capacity entries.
func New(capacity int) (*TLB, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: TLB capacity %d",
			vm.ErrInvalidConfiguration, capacity)
	}

	t := &TLB{
		capacity: capacity,
		set:      internal.NewSet(capacity),
	}

	return t, nil
}

// Lookup returns the frame cached for the page. A hit makes the entry the most
// recently used one. A miss leaves the order untouched.
func (t *TLB) Lookup(page int) (int, bool) {
	t.accesses++

	block, found := t.set.Lookup(page)
	if !found {
		return vm.NoFrame, false
	}

	t.hits++
	t.set.Visit(page)

	return block.Frame, true
}

// Insert caches a translation as the most recently used entry.
func (t *TLB) Insert(page, frame int) {
	t.set.Insert(page, frame)
}

// InvalidateAll drops every cached translation. Counters are kept.
func (t *TLB) InvalidateAll() {
	t.set.Reset()
}

// Entries returns the cached translations from least to most recently used.
func (t *TLB) Entries() []Entry {
	blocks := t.set.Blocks()

	entries := make([]Entry, len(blocks))
	for i, b := range blocks {
		entries[i] = Entry{Page: b.Page, Frame: b.Frame}
	}

	return entries
}

// Len returns the number of cached translations.
func (t *TLB) Len() int {
	return t.set.Len()
}

// Capacity returns the maximum number of cached translations.
func (t *TLB) Capacity() int {
	return t.capacity
}

// Accesses returns the number of lookups.
func (t *TLB) Accesses() uint64 {
	return t.accesses
}

// Hits returns the number of lookups that found a translation.
func (t *TLB) Hits() uint64 {
	return t.hits
}

// Misses returns the number of lookups that found nothing.
func (t *TLB) Misses() uint64 {
	return t.accesses - t.hits
}

// Reset drops all translations and zeroes the counters.
func (t *TLB) Reset() {
	t.set.Reset()
	t.accesses = 0
	t.hits = 0
}
