package hooking

import (
	"github.com/tebeka/atexit"
)

// TracerBackend is a backend that can store tasks.
type TracerBackend interface {
	// Write writes a task to the storage.
	Write(t Task)

	// Flush flushes the tasks to the storage, in case if the backend buffers
	// the tasks.
	Flush()
}

// DBTracer collects the tasks announced through task hooks and hands every
// finished task to a backend.
type DBTracer struct {
	timeTeller   TimeTeller
	backend      TracerBackend
	filter       TaskFilter
	tracingTasks map[string]Task
	terminated   bool
}

// NewDBTracer creates a new DBTracer. Tasks still in flight are written when
// the program exits through atexit.
func NewDBTracer(
	timeTeller TimeTeller,
	backend TracerBackend,
) *DBTracer {
	t := &DBTracer{
		timeTeller:   timeTeller,
		backend:      backend,
		tracingTasks: make(map[string]Task),
	}

	atexit.Register(func() { t.Terminate() })

	return t
}

// WithFilter only keeps tasks accepted by filter.
func (t *DBTracer) WithFilter(filter TaskFilter) *DBTracer {
	t.filter = filter
	return t
}

// Func records the start end of a task.
func (t *DBTracer) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosTaskStart:
		t.StartTask(ctx.Item.(TaskStart))
	case HookPosTaskStep:
		t.StepTask(ctx.Item.(TaskStep))
	case HookPosTaskTag:
		t.TagTask(ctx.Item.(TaskTag))
	case HookPosTaskEnd:
		t.EndTask(ctx.Item.(TaskEnd))
	}
}

// StartTask marks the start of a task.
func (t *DBTracer) StartTask(taskStart TaskStart) {
	startingTaskMustBeValid(taskStart)

	if t.filter != nil && !t.filter(taskStart) {
		return
	}

	t.tracingTasks[taskStart.ID] = Task{
		ID:        taskStart.ID,
		ParentID:  taskStart.ParentID,
		Kind:      taskStart.Kind,
		What:      taskStart.What,
		Where:     taskStart.Where,
		StartTime: t.timeTeller.Now(),
	}
}

func startingTaskMustBeValid(task TaskStart) {
	if task.ID == "" {
		panic("task ID must be set")
	}

	if task.Kind == "" {
		panic("task kind must be set")
	}

	if task.What == "" {
		panic("task what must be set")
	}

	if task.Where == "" {
		panic("task where must be set")
	}
}

// StepTask marks a step of a task.
func (t *DBTracer) StepTask(ts TaskStep) {
	originalTask, ok := t.tracingTasks[ts.TaskID]
	if !ok {
		return
	}

	originalTask.Steps = append(originalTask.Steps, Step{
		ID:     ts.StepID,
		Time:   t.timeTeller.Now(),
		Kind:   ts.Kind,
		What:   ts.What,
		Detail: ts.Detail,
	})

	t.tracingTasks[ts.TaskID] = originalTask
}

// TagTask marks a tag of a task.
func (t *DBTracer) TagTask(tt TaskTag) {
	originalTask, ok := t.tracingTasks[tt.TaskID]
	if !ok {
		return
	}

	originalTask.Tags = append(originalTask.Tags, Tag{
		What:   tt.What,
		Detail: tt.Detail,
	})

	t.tracingTasks[tt.TaskID] = originalTask
}

// EndTask marks the end of a task and writes it to the backend.
func (t *DBTracer) EndTask(taskEnd TaskEnd) {
	originalTask, ok := t.tracingTasks[taskEnd.ID]
	if !ok {
		return
	}

	originalTask.EndTime = t.timeTeller.Now()

	delete(t.tracingTasks, taskEnd.ID)

	t.backend.Write(originalTask)
}

// NumInflightTasks returns how many tasks have started but not ended.
func (t *DBTracer) NumInflightTasks() int {
	return len(t.tracingTasks)
}

// Terminate ends all the unfinished tasks and flushes the backend. It is safe
// to call more than once.
func (t *DBTracer) Terminate() {
	if t.terminated {
		return
	}

	t.terminated = true

	for _, task := range t.tracingTasks {
		task.EndTime = t.timeTeller.Now()
		t.backend.Write(task)
	}

	t.tracingTasks = make(map[string]Task)

	t.backend.Flush()
}
