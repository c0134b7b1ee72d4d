package hooking

import (
	"sync"
)

// TagCountTracer counts how many times each tag is attached to the tasks it
// accepts. The engine tags every translation with its outcome, so this tracer
// gives per-outcome totals.
type TagCountTracer struct {
	filter TaskFilter
	lock   sync.Mutex

	acceptedTasks map[string]bool
	tagNames      []string
	tagCount      map[string]uint64
}

// NewTagCountTracer creates a new TagCountTracer. A nil filter accepts every
// task.
func NewTagCountTracer(filter TaskFilter) *TagCountTracer {
	t := &TagCountTracer{
		filter:        filter,
		acceptedTasks: make(map[string]bool),
		tagCount:      make(map[string]uint64),
	}

	return t
}

// Func dispatches task hooks.
func (t *TagCountTracer) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosTaskStart:
		t.StartTask(ctx.Item.(TaskStart))
	case HookPosTaskTag:
		t.TagTask(ctx.Item.(TaskTag))
	case HookPosTaskEnd:
		t.EndTask(ctx.Item.(TaskEnd))
	}
}

// StartTask decides whether the tags of the task will be counted.
func (t *TagCountTracer) StartTask(taskStart TaskStart) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.filter != nil && !t.filter(taskStart) {
		return
	}

	t.acceptedTasks[taskStart.ID] = true
}

// TagTask counts a tag if its task was accepted.
func (t *TagCountTracer) TagTask(taskTag TaskTag) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if !t.acceptedTasks[taskTag.TaskID] {
		return
	}

	if _, ok := t.tagCount[taskTag.What]; !ok {
		t.tagNames = append(t.tagNames, taskTag.What)
	}

	t.tagCount[taskTag.What]++
}

// EndTask forgets a finished task.
func (t *TagCountTracer) EndTask(taskEnd TaskEnd) {
	t.lock.Lock()
	defer t.lock.Unlock()

	delete(t.acceptedTasks, taskEnd.ID)
}

// GetTagNames returns all the tag names collected, in first-seen order.
func (t *TagCountTracer) GetTagNames() []string {
	t.lock.Lock()
	defer t.lock.Unlock()

	names := make([]string, len(t.tagNames))
	copy(names, t.tagNames)

	return names
}

// GetTagCount returns how many times a tag was seen.
func (t *TagCountTracer) GetTagCount(tagName string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.tagCount[tagName]
}

// Reset drops all the counts.
func (t *TagCountTracer) Reset() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.acceptedTasks = make(map[string]bool)
	t.tagNames = nil
	t.tagCount = make(map[string]uint64)
}
