package mmu

import (
	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/mem/vm/pagetable"
	"github.com/sarchlab/vmsim/mem/vm/tlb"
)

// FrameState tells which page a frame holds.
type FrameState struct {
	Frame    int  `json:"frame"`
	Page     int  `json:"page"`
	Occupied bool `json:"occupied"`
}

// PageState is the view of one page of the address space.
type PageState struct {
	Page      int  `json:"page"`
	InMemory  bool `json:"in_memory"`
	Frame     int  `json:"frame"`
	LoadCount int  `json:"load_count"`
}

// Snapshot is a read-only copy of the engine state.
type Snapshot struct {
	Name   string        `json:"name"`
	Config Config        `json:"config"`
	Policy vm.PolicyKind `json:"policy"`

	TLBEntries       []tlb.Entry       `json:"tlb_entries"`
	PageTableEntries []pagetable.Entry `json:"page_table_entries"`
	Frames           []FrameState      `json:"frames"`
	Pages            []PageState       `json:"pages"`
	StoredPages      []int             `json:"stored_pages"`

	// PolicyOrder lists the resident pages, next victim first.
	PolicyOrder []int `json:"policy_order"`

	Stats            vm.Statistics `json:"stats"`
	FaultRate        float64       `json:"fault_rate"`
	HitRatio         float64       `json:"hit_ratio"`
	OccupancyPercent float64       `json:"occupancy_percent"`
}

// Snapshot copies the state of the engine.
func (e *Engine) Snapshot() (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.mustBeConfigured(); err != nil {
		return Snapshot{}, err
	}

	s := Snapshot{
		Name:             e.Name(),
		Config:           e.config,
		Policy:           e.policy.Kind(),
		TLBEntries:       e.tlb.Entries(),
		PageTableEntries: e.table.Entries(),
		StoredPages:      e.store.Pages(),
		PolicyOrder:      e.policy.Resident(),
		Stats:            *e.stats,
		FaultRate:        e.stats.FaultRate(),
		HitRatio:         e.stats.HitRatio(),
		OccupancyPercent: e.stats.OccupancyPercent(),
	}

	for _, f := range e.pool.Frames() {
		fs := FrameState{Frame: f.Number, Page: vm.NoFrame}
		if !f.IsEmpty() {
			fs.Page = f.Occupant.Number
			fs.Occupied = true
		}

		s.Frames = append(s.Frames, fs)
	}

	for _, p := range e.space.Pages() {
		s.Pages = append(s.Pages, PageState{
			Page:      p.Number,
			InMemory:  p.InMemory,
			Frame:     p.FrameNumber,
			LoadCount: p.LoadCount,
		})
	}

	return s, nil
}

// ResidentPages returns the pages held by the frames, ordered by frame.
func (s Snapshot) ResidentPages() []int {
	pages := []int{}

	for _, f := range s.Frames {
		if f.Occupied {
			pages = append(pages, f.Page)
		}
	}

	return pages
}
