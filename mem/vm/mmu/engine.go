// Package mmu provides the translation engine. It resolves page numbers
// through the TLB and the page table, and handles page faults by loading
// pages into the frame pool, evicting a victim chosen by the replacement
// policy when the pool is full.
package mmu

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/mem/vm/backingstore"
	"github.com/sarchlab/vmsim/mem/vm/framepool"
	"github.com/sarchlab/vmsim/mem/vm/pagetable"
	"github.com/sarchlab/vmsim/mem/vm/replacement"
	"github.com/sarchlab/vmsim/mem/vm/tlb"
	"github.com/sarchlab/vmsim/sim/hooking"
	"github.com/sarchlab/vmsim/sim/id"
	"github.com/sarchlab/vmsim/sim/naming"
)

// Engine is the address translation engine. All the public methods are safe
// to call from multiple goroutines; they are served one at a time.
//
// Hooks run while the engine is locked and must not call back into it.
type Engine struct {
	naming.NamedBase
	hooking.HookableBase

	mu          sync.Mutex
	pacing      time.Duration
	idGenerator id.IDGenerator
	newPolicy   PolicyFactory
	ticks       atomic.Uint64

	configured bool
	config     Config
	stats      *vm.Statistics

	space  *vm.AddressSpace
	store  *backingstore.Store
	pool   *framepool.FramePool
	table  pagetable.PageTable
	tlb    *tlb.TLB
	policy replacement.Policy
}

// Now returns the virtual time of the engine. Every completed translation
// advances it by one.
func (e *Engine) Now() float64 {
	return float64(e.ticks.Load())
}

// AcceptHook registers a hook.
func (e *Engine) AcceptHook(hook hooking.Hook) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.HookableBase.AcceptHook(hook)
}

// Configure (re)creates every component from cfg. On error the engine keeps
// its previous state.
func (e *Engine) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	policy, err := e.newPolicy(cfg.Policy)
	if err != nil {
		if !errors.Is(err, vm.ErrInvalidConfiguration) {
			err = fmt.Errorf("%w: %w", vm.ErrInvalidConfiguration, err)
		}

		return err
	}

	space, err := vm.NewAddressSpace(cfg.AddressSpaceSize)
	if err != nil {
		return err
	}

	store := backingstore.New()

	pool, err := framepool.New(cfg.NumFrames, store)
	if err != nil {
		return err
	}

	cache, err := tlb.New(cfg.TLBCapacity)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.config = cfg
	e.space = space
	e.store = store
	e.pool = pool
	e.table = pagetable.NewPageTable(pool)
	e.tlb = cache
	e.policy = policy
	e.stats.Reset(cfg.NumFrames)
	e.configured = true

	e.emit(Event{Kind: EventConfigured, Page: vm.NoFrame, Frame: vm.NoFrame,
		Config: cfg})

	return nil
}

// Config returns the current configuration.
func (e *Engine) Config() (Config, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.mustBeConfigured(); err != nil {
		return Config{}, err
	}

	return e.config, nil
}

// Statistics returns a copy of the counters.
func (e *Engine) Statistics() vm.Statistics {
	e.mu.Lock()
	defer e.mu.Unlock()

	return *e.stats
}

// Reset brings the engine back to the state right after Configure.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.mustBeConfigured(); err != nil {
		return err
	}

	e.pool.Clear()
	e.space.Reset()
	e.store.Clear()
	e.table.Clear()
	e.tlb.Reset()
	e.policy.Reset()
	e.stats.Reset(e.config.NumFrames)

	e.emit(Event{Kind: EventReset, Page: vm.NoFrame, Frame: vm.NoFrame})

	return nil
}

// Translate resolves a page number to a frame, loading the page if needed.
//
// A request is rejected before any change if the page is out of range or the
// context is already done. Once accepted, the translation always completes;
// a context cancelled during the pacing delay only cuts the delay short.
func (e *Engine) Translate(ctx context.Context, page int) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.mustBeConfigured(); err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res, err := e.translate(page)
	if err != nil {
		return Result{}, err
	}

	e.pace(ctx)

	return res, nil
}

// LoadBatch translates pages in order. Out-of-range pages are reported in
// their entry and do not stop the batch. Any other error stops the batch and
// is returned with the entries completed so far.
func (e *Engine) LoadBatch(
	ctx context.Context,
	baseAddress int,
	pages []int,
) (BatchResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.mustBeConfigured(); err != nil {
		return BatchResult{}, err
	}

	br := BatchResult{
		BaseAddress: baseAddress,
		Entries:     make([]BatchEntry, 0, len(pages)),
	}

	e.emit(Event{Kind: EventBatch, Page: baseAddress, Frame: vm.NoFrame,
		Count: len(pages)})

	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			br.Stats = *e.stats
			return br, err
		}

		res, err := e.translate(page)
		entry := BatchEntry{Index: i, Page: page, Result: res}

		switch {
		case err == nil:
			e.pace(ctx)
		case errors.Is(err, vm.ErrOutOfRangeAddress):
			entry.Result = Result{Page: page, Frame: vm.NoFrame}
			entry.Err = err
			entry.Error = err.Error()
		default:
			br.Stats = *e.stats
			return br, err
		}

		br.Entries = append(br.Entries, entry)
	}

	br.Stats = *e.stats

	return br, nil
}

func (e *Engine) mustBeConfigured() error {
	if !e.configured {
		return fmt.Errorf("%w: engine %s is not configured",
			vm.ErrInvalidConfiguration, e.Name())
	}

	return nil
}

func (e *Engine) pace(ctx context.Context) {
	if e.pacing <= 0 {
		return
	}

	timer := time.NewTimer(e.pacing)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func (e *Engine) translate(page int) (Result, error) {
	if !e.space.Contains(page) {
		e.emit(Event{Kind: EventOutOfRange, Page: page, Frame: vm.NoFrame})

		return Result{}, fmt.Errorf("%w: page %d, valid range is [0, %d)",
			vm.ErrOutOfRangeAddress, page, e.space.Size())
	}

	r := e.startRequest(page)
	e.stats.Accesses++

	e.stepRequest(r, "TLBCheck")

	if frame, hit := e.tlb.Lookup(page); hit {
		e.stats.TLBHits++
		e.policy.OnAccess(page)
		e.emit(Event{Kind: EventTLBHit, Page: page, Frame: frame})

		return e.finishRequest(r, Result{
			Page: page, Outcome: OutcomeTLBHit, Frame: frame,
		}), nil
	}

	e.stats.TLBMisses++
	e.emit(Event{Kind: EventTLBMiss, Page: page, Frame: vm.NoFrame})

	e.stepRequest(r, "TableCheck")

	if frame, hit := e.table.Lookup(page); hit {
		e.stats.PageTableHits++
		e.tlb.Insert(page, frame)
		e.policy.OnAccess(page)
		e.emit(Event{Kind: EventTableHit, Page: page, Frame: frame})

		return e.finishRequest(r, Result{
			Page: page, Outcome: OutcomeTableHit, Frame: frame,
		}), nil
	}

	e.stats.PageFaults++
	e.emit(Event{Kind: EventPageFault, Page: page, Frame: vm.NoFrame})

	res, err := e.handleFault(r, page)
	if err != nil {
		e.abortRequest(r, err)
		return Result{}, err
	}

	return e.finishRequest(r, res), nil
}

func (e *Engine) handleFault(r *request, pageNumber int) (Result, error) {
	e.stepRequest(r, "FrameAcquire")

	page, err := e.space.Page(pageNumber)
	if err != nil {
		return Result{}, err
	}

	stored := e.store.Contains(pageNumber)
	if _, mapped := e.table.Entry(pageNumber); mapped && !stored {
		return Result{}, fmt.Errorf(
			"%w: page %d was evicted but is not in the secondary store",
			vm.ErrInconsistentStoreState, pageNumber)
	}

	res := Result{Page: pageNumber, Outcome: OutcomeFault}

	frame, free := e.pool.AllocateFree()
	if !free {
		victim, victimFrame, err := e.selectVictim()
		if err != nil {
			return Result{}, err
		}

		e.stepRequest(r, "Evict")

		if err := e.evict(victim, victimFrame); err != nil {
			return Result{}, err
		}

		frame = victimFrame
		res.Evicted = victim
		res.HasEvicted = true

		e.emit(Event{Kind: EventEvict, Page: pageNumber, Frame: frame,
			Victim: victim})
	}

	e.stepRequest(r, "Load")

	if stored {
		page, err = e.store.Retrieve(pageNumber)
		if err != nil {
			return Result{}, inconsistent(err)
		}
	}

	if err := e.pool.Occupy(frame, page); err != nil {
		return Result{}, inconsistent(err)
	}

	if err := e.table.Map(pageNumber, frame); err != nil {
		return Result{}, inconsistent(err)
	}

	e.tlb.Insert(pageNumber, frame)
	e.policy.OnLoad(pageNumber)
	e.emit(Event{Kind: EventLoad, Page: pageNumber, Frame: frame})

	res.Frame = frame

	return res, nil
}

func (e *Engine) selectVictim() (page, frame int, err error) {
	victim, ok := e.policy.SelectVictim()
	if !ok {
		return 0, 0, fmt.Errorf(
			"%w: %d frames are in use and the %s policy tracks no page",
			vm.ErrCapacityExhaustedWithNoVictim, e.pool.Size(),
			e.policy.Kind())
	}

	entry, found := e.table.Entry(victim)
	if !found || !entry.Valid {
		return 0, 0, fmt.Errorf(
			"%w: the %s policy selected page %d, which is not resident",
			vm.ErrCapacityExhaustedWithNoVictim, e.policy.Kind(), victim)
	}

	occupant, occupied := e.pool.OccupantOf(entry.Frame)
	if !occupied || occupant != victim {
		return 0, 0, fmt.Errorf(
			"%w: page table maps page %d to frame %d, which holds page %d",
			vm.ErrInconsistentStoreState, victim, entry.Frame, occupant)
	}

	return victim, entry.Frame, nil
}

func (e *Engine) evict(victim, frame int) error {
	if _, err := e.pool.Evict(frame); err != nil {
		return inconsistent(err)
	}

	e.table.Invalidate(victim)
	e.tlb.InvalidateAll()
	e.policy.OnEvict(victim)
	e.stats.Replacements++

	return nil
}

func inconsistent(err error) error {
	return fmt.Errorf("%w: %w", vm.ErrInconsistentStoreState, err)
}

func (e *Engine) emit(evt Event) {
	e.InvokeHook(hooking.HookCtx{
		Domain: e,
		Now:    e.Now(),
		Pos:    HookPosEvent,
		Item:   evt,
	})
}
