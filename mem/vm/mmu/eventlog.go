package mmu

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sarchlab/vmsim/sim/hooking"
)

// LogEntry is one message kept by an EventLog.
type LogEntry struct {
	Time    float64   `json:"time"`
	Kind    EventKind `json:"kind"`
	Message string    `json:"message"`
}

func (e LogEntry) String() string {
	return fmt.Sprintf("[%.0f] %s", e.Time, e.Message)
}

// EventLog is a hook that keeps the latest engine events in memory. When it
// is full, the oldest entry is dropped.
type EventLog struct {
	mu      sync.Mutex
	maxSize int
	entries []LogEntry
}

// NewEventLog creates an EventLog that keeps at most maxSize entries.
func NewEventLog(maxSize int) *EventLog {
	if maxSize <= 0 {
		panic("event log size must be positive")
	}

	return &EventLog{maxSize: maxSize}
}

// Func records engine events.
func (l *EventLog) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosEvent {
		return
	}

	evt, ok := ctx.Item.(Event)
	if !ok {
		return
	}

	l.Append(LogEntry{Time: ctx.Now, Kind: evt.Kind, Message: evt.String()})
}

// Append adds an entry.
func (l *EventLog) Append(entry LogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) >= l.maxSize {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:len(l.entries)-1]
	}

	l.entries = append(l.entries, entry)
}

// Entries returns a copy of the entries, oldest first.
func (l *EventLog) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]LogEntry(nil), l.entries...)
}

// Filter returns the entries whose message contains keyword.
func (l *EventLog) Filter(keyword string) []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	filtered := []LogEntry{}

	for _, e := range l.entries {
		if strings.Contains(e.Message, keyword) {
			filtered = append(filtered, e)
		}
	}

	return filtered
}

// Export returns every entry on its own line.
func (l *EventLog) Export() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var b strings.Builder

	for _, e := range l.entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}

	return b.String()
}

// Len returns the number of entries.
func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}

// Clear drops all entries.
func (l *EventLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
}
