// Package pagetable maps virtual pages to physical frames.
package pagetable

import (
	"fmt"
	"sort"

	"github.com/sarchlab/vmsim/mem/vm"
)

// FrameOwnership tells which page occupies a frame. The frame pool implements
// it, so the page table can only agree with the pool.
type FrameOwnership interface {
	OccupantOf(frame int) (pageNumber int, occupied bool)
}

// An Entry is the mapping of one page.
type Entry struct {
	Page  int  `json:"page"`
	Frame int  `json:"frame"`
	Valid bool `json:"valid"`

	// Hits and Faults count the lookups that found this entry valid or
	// invalid.
	Hits   uint64 `json:"hits"`
	Faults uint64 `json:"faults"`
}

// A PageTable holds one entry for every page that has ever been mapped.
type PageTable interface {
	// Map marks the entry of page valid with the given frame. The frame must
	// be occupied by page.
	Map(page, frame int) error

	// Lookup returns the frame of a page. The bool is false on a fault.
	Lookup(page int) (frame int, found bool)

	// Invalidate marks the entry invalid but keeps its history.
	Invalidate(page int)

	// IsResident tells if the page has a valid entry.
	IsResident(page int) bool

	// Entry returns the entry of a page, if it has ever been mapped.
	Entry(page int) (Entry, bool)

	// Entries returns all the entries ordered by page number.
	Entries() []Entry

	// Accesses returns the number of lookups.
	Accesses() uint64

	// Faults returns the number of lookups that faulted.
	Faults() uint64

	// Clear removes all entries and resets the counters.
	Clear()
}

// NewPageTable creates a new PageTable that checks mappings against owner.
func NewPageTable(owner FrameOwnership) PageTable {
	return &pageTableImpl{
		owner:   owner,
		entries: make(map[int]*Entry),
	}
}

type pageTableImpl struct {
	owner    FrameOwnership
	entries  map[int]*Entry
	accesses uint64
	faults   uint64
}

func (pt *pageTableImpl) Map(page, frame int) error {
	occupant, occupied := pt.owner.OccupantOf(frame)
	if !occupied || occupant != page {
		return fmt.Errorf("%w: frame %d, page %d",
			vm.ErrFrameNotOwned, frame, page)
	}

	entry, found := pt.entries[page]
	if !found {
		entry = &Entry{Page: page}
		pt.entries[page] = entry
	}

	entry.Frame = frame
	entry.Valid = true

	return nil
}

func (pt *pageTableImpl) Lookup(page int) (int, bool) {
	pt.accesses++

	entry, found := pt.entries[page]
	if !found {
		pt.faults++
		return vm.NoFrame, false
	}

	if !entry.Valid {
		pt.faults++
		entry.Faults++

		return vm.NoFrame, false
	}

	entry.Hits++

	return entry.Frame, true
}

func (pt *pageTableImpl) Invalidate(page int) {
	entry, found := pt.entries[page]
	if !found {
		return
	}

	entry.Valid = false
}

func (pt *pageTableImpl) IsResident(page int) bool {
	entry, found := pt.entries[page]
	return found && entry.Valid
}

func (pt *pageTableImpl) Entry(page int) (Entry, bool) {
	entry, found := pt.entries[page]
	if !found {
		return Entry{}, false
	}

	return *entry, true
}

func (pt *pageTableImpl) Entries() []Entry {
	entries := make([]Entry, 0, len(pt.entries))
	for _, e := range pt.entries {
		entries = append(entries, *e)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Page < entries[j].Page
	})

	return entries
}

func (pt *pageTableImpl) Accesses() uint64 {
	return pt.accesses
}

func (pt *pageTableImpl) Faults() uint64 {
	return pt.faults
}

func (pt *pageTableImpl) Clear() {
	pt.entries = make(map[int]*Entry)
	pt.accesses = 0
	pt.faults = 0
}
