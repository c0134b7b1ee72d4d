package vm

// Statistics collects the counters of one run. The engine owns the instance
// it is given and resets it on reconfiguration.
type Statistics struct {
	Accesses      uint64 `json:"accesses"`
	TLBHits       uint64 `json:"tlb_hits"`
	TLBMisses     uint64 `json:"tlb_misses"`
	PageTableHits uint64 `json:"page_table_hits"`
	PageFaults    uint64 `json:"page_faults"`
	Replacements  uint64 `json:"replacements"`

	TotalFrames    int `json:"total_frames"`
	ResidentFrames int `json:"resident_frames"`
}

// Reset zeroes all counters and sets the frame pool size.
func (s *Statistics) Reset(totalFrames int) {
	*s = Statistics{TotalFrames: totalFrames}
}

// FaultRate is the percentage of accesses that faulted.
func (s Statistics) FaultRate() float64 {
	return percent(s.PageFaults, s.Accesses)
}

// HitRatio is the percentage of accesses served by the TLB.
func (s Statistics) HitRatio() float64 {
	return percent(s.TLBHits, s.Accesses)
}

// OccupancyPercent is the percentage of frames holding a page.
func (s Statistics) OccupancyPercent() float64 {
	if s.TotalFrames == 0 {
		return 0
	}

	return float64(s.ResidentFrames) * 100 / float64(s.TotalFrames)
}

func percent(part, total uint64) float64 {
	if total == 0 {
		return 0
	}

	return float64(part) * 100 / float64(total)
}
