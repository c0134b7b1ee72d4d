package mmu

import (
	"fmt"
	"strconv"

	"github.com/sarchlab/vmsim/sim/hooking"
)

// TaskKindTranslation is the kind of the task traced for every translation.
const TaskKindTranslation = "translation"

type request struct {
	taskID   string
	numSteps int
}

func taskWhat(page int) string {
	return fmt.Sprintf("page %d", page)
}

// PageTaskFilter accepts the translation tasks of the given pages only.
func PageTaskFilter(pages []int) hooking.TaskFilter {
	accepted := make(map[string]bool, len(pages))
	for _, p := range pages {
		accepted[taskWhat(p)] = true
	}

	return func(t hooking.TaskStart) bool {
		return t.Kind == TaskKindTranslation && accepted[t.What]
	}
}

func (e *Engine) startRequest(page int) *request {
	r := &request{taskID: e.idGenerator.Generate()}

	e.invokeTaskHook(hooking.HookPosTaskStart, hooking.TaskStart{
		ID:    r.taskID,
		Kind:  TaskKindTranslation,
		What:  taskWhat(page),
		Where: e.Name(),
	})

	return r
}

func (e *Engine) stepRequest(r *request, state string) {
	r.numSteps++

	e.invokeTaskHook(hooking.HookPosTaskStep, hooking.TaskStep{
		TaskID: r.taskID,
		StepID: r.taskID + "." + strconv.Itoa(r.numSteps),
		Kind:   "state",
		What:   state,
	})
}

func (e *Engine) tagRequest(r *request, what, detail string) {
	e.invokeTaskHook(hooking.HookPosTaskTag, hooking.TaskTag{
		TaskID: r.taskID,
		What:   what,
		Detail: detail,
	})
}

func (e *Engine) finishRequest(r *request, res Result) Result {
	e.stats.ResidentFrames = e.pool.ResidentCount()
	res.Stats = *e.stats

	e.tagRequest(r, string(res.Outcome), "")

	if res.HasEvicted {
		e.tagRequest(r, "evicted", strconv.Itoa(res.Evicted))
	}

	e.ticks.Add(1)
	e.invokeTaskHook(hooking.HookPosTaskEnd, hooking.TaskEnd{ID: r.taskID})

	e.InvokeHook(hooking.HookCtx{
		Domain: e,
		Now:    e.Now(),
		Pos:    HookPosRequestDone,
		Item:   res,
	})

	return res
}

func (e *Engine) abortRequest(r *request, err error) {
	e.stats.ResidentFrames = e.pool.ResidentCount()

	e.tagRequest(r, "error", err.Error())
	e.ticks.Add(1)
	e.invokeTaskHook(hooking.HookPosTaskEnd, hooking.TaskEnd{ID: r.taskID})
}

func (e *Engine) invokeTaskHook(pos *hooking.HookPos, item any) {
	if e.NumHooks() == 0 {
		return
	}

	e.InvokeHook(hooking.HookCtx{
		Domain: e,
		Now:    e.Now(),
		Pos:    pos,
		Item:   item,
	})
}
