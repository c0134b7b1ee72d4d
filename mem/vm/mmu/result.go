package mmu

import (
	"github.com/sarchlab/vmsim/mem/vm"
)

// Outcome is how a translation was resolved.
type Outcome string

// The possible outcomes of a translation.
const (
	OutcomeTLBHit   Outcome = "TLBHit"
	OutcomeTableHit Outcome = "TableHit"
	OutcomeFault    Outcome = "Fault"
)

// Result is the outcome of one translation.
type Result struct {
	Page    int     `json:"page"`
	Outcome Outcome `json:"outcome"`
	Frame   int     `json:"frame"`

	// Evicted is the page that lost its frame. Only meaningful when
	// HasEvicted is true.
	Evicted    int  `json:"evicted"`
	HasEvicted bool `json:"has_evicted"`

	// Stats are the counters right after the translation.
	Stats vm.Statistics `json:"stats"`
}

// BatchEntry is the result of one page of a batch.
type BatchEntry struct {
	Index  int    `json:"index"`
	Page   int    `json:"page"`
	Result Result `json:"result"`

	// Err is set when the page was rejected as out of range.
	Err   error  `json:"-"`
	Error string `json:"error,omitempty"`
}

// BatchResult collects the outcome of every page of a batch, in order.
type BatchResult struct {
	BaseAddress int           `json:"base_address"`
	Entries     []BatchEntry  `json:"entries"`
	Stats       vm.Statistics `json:"stats"`
}
