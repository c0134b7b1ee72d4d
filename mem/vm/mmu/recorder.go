package mmu

import (
	"github.com/sarchlab/vmsim/datarecording"
	"github.com/sarchlab/vmsim/sim/hooking"
	"github.com/sarchlab/vmsim/sim/naming"
)

// RequestTable is the table RequestRecorder writes into.
const RequestTable = "translation"

// RequestRow is one recorded translation.
type RequestRow struct {
	Time          float64
	Engine        string
	Page          int
	Outcome       string
	Frame         int
	Evicted       int
	HasEvicted    bool
	Accesses      uint64
	PageFaults    uint64
	Replacements  uint64
	ResidentPages int
}

// RequestRecorder is a hook that records every completed translation.
type RequestRecorder struct {
	recorder datarecording.DataRecorder
}

// NewRequestRecorder creates the translation table in the recorder.
func NewRequestRecorder(
	recorder datarecording.DataRecorder,
) *RequestRecorder {
	recorder.CreateTable(RequestTable, RequestRow{})

	return &RequestRecorder{recorder: recorder}
}

// Func records a completed translation.
func (r *RequestRecorder) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosRequestDone {
		return
	}

	res, ok := ctx.Item.(Result)
	if !ok {
		return
	}

	row := RequestRow{
		Time:          ctx.Now,
		Page:          res.Page,
		Outcome:       string(res.Outcome),
		Frame:         res.Frame,
		Evicted:       res.Evicted,
		HasEvicted:    res.HasEvicted,
		Accesses:      res.Stats.Accesses,
		PageFaults:    res.Stats.PageFaults,
		Replacements:  res.Stats.Replacements,
		ResidentPages: res.Stats.ResidentFrames,
	}

	if named, ok := ctx.Domain.(naming.Named); ok {
		row.Engine = named.Name()
	}

	r.recorder.InsertData(RequestTable, row)
}

// Flush writes the buffered rows.
func (r *RequestRecorder) Flush() {
	r.recorder.Flush()
}
