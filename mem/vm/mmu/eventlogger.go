package mmu

import (
	"log"

	"github.com/sarchlab/vmsim/sim/hooking"
	"github.com/sarchlab/vmsim/sim/naming"
)

// EventLogger is a hook that prints every engine event.
type EventLogger struct {
	hooking.LogHookBase
}

// NewEventLogger returns a new EventLogger which will write into the logger
func NewEventLogger(logger *log.Logger) *EventLogger {
	h := new(EventLogger)
	h.Logger = logger

	return h
}

// Func writes the event information into the logger
func (h *EventLogger) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosEvent {
		return
	}

	evt, ok := ctx.Item.(Event)
	if !ok {
		return
	}

	if named, ok := ctx.Domain.(naming.Named); ok {
		h.Printf("%.0f, %s, %s", ctx.Now, named.Name(), evt)
		return
	}

	h.Printf("%.0f, %s", ctx.Now, evt)
}
