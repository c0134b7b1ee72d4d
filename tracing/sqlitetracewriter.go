// Package tracing stores the tasks collected by a hooking.DBTracer.
package tracing

import (
	"github.com/sarchlab/vmsim/datarecording"
	"github.com/sarchlab/vmsim/sim/hooking"
)

// Table names used by SQLiteTraceWriter.
const (
	TaskTable = "trace"
	StepTable = "trace_steps"
	TagTable  = "trace_tags"
)

// TaskEntry is one row of the task table.
type TaskEntry struct {
	ID        string
	ParentID  string
	Kind      string
	What      string
	Location  string
	StartTime float64
	EndTime   float64
}

// StepEntry is one row of the step table.
type StepEntry struct {
	TaskID string
	StepID string
	Time   float64
	Kind   string
	What   string
	Detail string
}

// TagEntry is one row of the tag table.
type TagEntry struct {
	TaskID string
	What   string
	Detail string
}

// SQLiteTraceWriter is a hooking.TracerBackend that writes tasks through a
// DataRecorder.
type SQLiteTraceWriter struct {
	recorder datarecording.DataRecorder
	written  int
}

// NewSQLiteTraceWriter creates the trace tables in the recorder.
func NewSQLiteTraceWriter(
	recorder datarecording.DataRecorder,
) *SQLiteTraceWriter {
	recorder.CreateTable(TaskTable, TaskEntry{})
	recorder.CreateTable(StepTable, StepEntry{})
	recorder.CreateTable(TagTable, TagEntry{})

	return &SQLiteTraceWriter{recorder: recorder}
}

// Write buffers a task with its steps and tags.
func (w *SQLiteTraceWriter) Write(task hooking.Task) {
	w.recorder.InsertData(TaskTable, TaskEntry{
		ID:        task.ID,
		ParentID:  task.ParentID,
		Kind:      task.Kind,
		What:      task.What,
		Location:  task.Where,
		StartTime: task.StartTime,
		EndTime:   task.EndTime,
	})

	for _, s := range task.Steps {
		w.recorder.InsertData(StepTable, StepEntry{
			TaskID: task.ID,
			StepID: s.ID,
			Time:   s.Time,
			Kind:   s.Kind,
			What:   s.What,
			Detail: s.Detail,
		})
	}

	for _, tag := range task.Tags {
		w.recorder.InsertData(TagTable, TagEntry{
			TaskID: task.ID,
			What:   tag.What,
			Detail: tag.Detail,
		})
	}

	w.written++
}

// Flush writes the buffered rows into the database.
func (w *SQLiteTraceWriter) Flush() {
	w.recorder.Flush()
}

// NumTasksWritten returns how many tasks have been handed to the writer.
func (w *SQLiteTraceWriter) NumTasksWritten() int {
	return w.written
}
