package mmu

import (
	"fmt"

	"github.com/sarchlab/vmsim/sim/hooking"
)

// Hook positions of the Engine.
var (
	// HookPosEvent is invoked with an Event as the item on every state
	// transition.
	HookPosEvent = &hooking.HookPos{Name: "MMU Event"}

	// HookPosRequestDone is invoked with the Result of every completed
	// translation.
	HookPosRequestDone = &hooking.HookPos{Name: "MMU Request Done"}
)

// EventKind tells what happened in the engine.
type EventKind string

// The kinds of events the engine emits.
const (
	EventConfigured EventKind = "Configured"
	EventReset      EventKind = "Reset"
	EventBatch      EventKind = "Batch"
	EventOutOfRange EventKind = "OutOfRange"
	EventTLBHit     EventKind = "TLBHit"
	EventTLBMiss    EventKind = "TLBMiss"
	EventTableHit   EventKind = "TableHit"
	EventPageFault  EventKind = "PageFault"
	EventEvict      EventKind = "Evict"
	EventLoad       EventKind = "Load"
)

// An Event describes one engine state transition.
type Event struct {
	Kind EventKind `json:"kind"`
	Page int       `json:"page"`

	// Frame is the frame involved, or vm.NoFrame.
	Frame int `json:"frame"`

	// Victim is the page evicted to make room for Page. Only set on
	// EventEvict.
	Victim int `json:"victim"`

	// Count is the number of pages of an EventBatch, whose Page is the base
	// address.
	Count int `json:"count"`

	// Config is only set on EventConfigured.
	Config Config `json:"config"`
}

func (e Event) String() string {
	switch e.Kind {
	case EventConfigured:
		return fmt.Sprintf("Configured: %d pages, %d frames, TLB size %d, %s",
			e.Config.AddressSpaceSize, e.Config.NumFrames,
			e.Config.TLBCapacity, e.Config.Policy)
	case EventReset:
		return "Reset"
	case EventBatch:
		return fmt.Sprintf("Loading %d pages at address %X", e.Count, e.Page)
	case EventOutOfRange:
		return fmt.Sprintf("Page %d is out of range", e.Page)
	case EventTLBHit:
		return fmt.Sprintf("TLB hit: page %d in frame %d", e.Page, e.Frame)
	case EventTLBMiss:
		return fmt.Sprintf("TLB miss: page %d", e.Page)
	case EventTableHit:
		return fmt.Sprintf("Page table hit: page %d in frame %d",
			e.Page, e.Frame)
	case EventPageFault:
		return fmt.Sprintf("Page fault: page %d", e.Page)
	case EventEvict:
		return fmt.Sprintf("Page %d replaced by page %d in frame %d",
			e.Victim, e.Page, e.Frame)
	case EventLoad:
		return fmt.Sprintf("Page %d loaded into frame %d", e.Page, e.Frame)
	}

	return string(e.Kind)
}
