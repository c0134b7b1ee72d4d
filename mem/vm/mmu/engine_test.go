package mmu

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/mem/vm/replacement"
	"github.com/sarchlab/vmsim/mem/vm/tlb"
	"github.com/sarchlab/vmsim/sim/hooking"
)

func translateAll(e *Engine, pages ...int) []Result {
	results := make([]Result, 0, len(pages))

	for _, p := range pages {
		res, err := e.Translate(context.Background(), p)
		Expect(err).NotTo(HaveOccurred())

		results = append(results, res)
	}

	return results
}

func mustSnapshot(e *Engine) Snapshot {
	s, err := e.Snapshot()
	Expect(err).NotTo(HaveOccurred())

	return s
}

var _ = Describe("Engine", func() {
	var (
		ctx context.Context
		e   *Engine
	)

	configure := func(space, frames, tlbSize int, policy vm.PolicyKind) {
		Expect(e.Configure(Config{
			AddressSpaceSize: space,
			NumFrames:        frames,
			TLBCapacity:      tlbSize,
			Policy:           policy,
		})).To(Succeed())
	}

	BeforeEach(func() {
		ctx = context.Background()
		e = MakeBuilder().Build("MMU")
	})

	AfterEach(func() {
		if _, err := e.Config(); err == nil {
			Expect(e.CheckConsistency()).To(Succeed())
		}
	})

	Context("before configuration", func() {
		It("should reject every operation", func() {
			_, err := e.Translate(ctx, 0)
			Expect(err).To(MatchError(vm.ErrInvalidConfiguration))

			_, err = e.LoadBatch(ctx, 0, []int{0})
			Expect(err).To(MatchError(vm.ErrInvalidConfiguration))

			_, err = e.Snapshot()
			Expect(err).To(MatchError(vm.ErrInvalidConfiguration))

			Expect(e.Reset()).To(MatchError(vm.ErrInvalidConfiguration))
		})
	})

	Context("configuration", func() {
		DescribeTable("invalid configurations",
			func(cfg Config) {
				Expect(e.Configure(cfg)).To(MatchError(vm.ErrInvalidConfiguration))
			},
			Entry("empty address space", Config{0, 2, 1, vm.PolicyFIFO}),
			Entry("no frames", Config{8, 0, 1, vm.PolicyFIFO}),
			Entry("no TLB", Config{8, 2, 0, vm.PolicyFIFO}),
			Entry("unknown policy", Config{8, 2, 1, vm.PolicyKind("MRU")}),
		)

		It("should keep the previous state on a failed reconfiguration", func() {
			configure(8, 2, 1, vm.PolicyFIFO)
			translateAll(e, 0)

			err := e.Configure(Config{8, -1, 1, vm.PolicyLRU})

			Expect(err).To(MatchError(vm.ErrInvalidConfiguration))
			Expect(mustSnapshot(e).ResidentPages()).To(Equal([]int{0}))
		})

		It("should start from a clean state", func() {
			configure(8, 2, 1, vm.PolicyFIFO)
			translateAll(e, 0, 1)

			configure(8, 3, 2, vm.PolicyLRU)

			s := mustSnapshot(e)
			Expect(s.Policy).To(Equal(vm.PolicyLRU))
			Expect(s.Frames).To(HaveLen(3))
			Expect(s.ResidentPages()).To(BeEmpty())
			Expect(s.Stats).To(Equal(vm.Statistics{TotalFrames: 3}))
		})
	})

	Context("translation", func() {
		BeforeEach(func() {
			configure(8, 2, 1, vm.PolicyFIFO)
		})

		It("should fault on a cold page", func() {
			res, err := e.Translate(ctx, 5)

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Outcome).To(Equal(OutcomeFault))
			Expect(res.Frame).To(Equal(0))
			Expect(res.HasEvicted).To(BeFalse())
			Expect(res.Stats.PageFaults).To(Equal(uint64(1)))
			Expect(res.Stats.ResidentFrames).To(Equal(1))
		})

		It("should hit the TLB on a repeated page", func() {
			translateAll(e, 5)

			res, err := e.Translate(ctx, 5)

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Outcome).To(Equal(OutcomeTLBHit))
			Expect(res.Frame).To(Equal(0))
			Expect(res.Stats.TLBHits).To(Equal(uint64(1)))
		})

		It("should hit the page table when the TLB lost the page", func() {
			translateAll(e, 5, 6)

			res, err := e.Translate(ctx, 5)

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Outcome).To(Equal(OutcomeTableHit))
			Expect(res.Frame).To(Equal(0))
			Expect(res.Stats.PageTableHits).To(Equal(uint64(1)))
			Expect(mustSnapshot(e).TLBEntries).To(ConsistOf(
				HaveField("Page", 5)))
		})

		It("should reject out of range pages without touching counters", func() {
			translateAll(e, 1)
			before := e.Statistics()

			_, err := e.Translate(ctx, 8)
			Expect(err).To(MatchError(vm.ErrOutOfRangeAddress))

			_, err = e.Translate(ctx, -1)
			Expect(err).To(MatchError(vm.ErrOutOfRangeAddress))

			Expect(e.Statistics()).To(Equal(before))
			Expect(mustSnapshot(e).ResidentPages()).To(Equal([]int{1}))
		})

		It("should reject requests whose context is done", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := e.Translate(cancelled, 1)

			Expect(err).To(MatchError(context.Canceled))
			Expect(e.Statistics().Accesses).To(BeZero())
		})

		It("should keep the derived counters consistent", func() {
			translateAll(e, 0, 1, 0, 2, 3, 2, 0)

			s := e.Statistics()
			Expect(s.Accesses).To(Equal(s.TLBHits + s.TLBMisses))
			Expect(s.TLBMisses).To(Equal(s.PageTableHits + s.PageFaults))
		})
	})

	Context("with FIFO replacement", func() {
		It("should evict the first loaded page", func() {
			configure(8, 2, 1, vm.PolicyFIFO)

			results := translateAll(e, 0, 1, 2)

			Expect(results[2].HasEvicted).To(BeTrue())
			Expect(results[2].Evicted).To(Equal(0))

			s := mustSnapshot(e)
			Expect(s.ResidentPages()).To(ConsistOf(1, 2))
			Expect(s.Stats.Replacements).To(Equal(uint64(1)))
			Expect(s.Stats.PageFaults).To(Equal(uint64(3)))
			Expect(s.StoredPages).To(Equal([]int{0}))
		})

		It("should ignore accesses when picking the victim", func() {
			configure(8, 3, 2, vm.PolicyFIFO)

			results := translateAll(e, 0, 1, 2, 0, 0, 3)

			Expect(results[5].Evicted).To(Equal(0))
		})

		It("should purge the TLB on eviction", func() {
			configure(8, 2, 2, vm.PolicyFIFO)
			translateAll(e, 0, 1)
			Expect(mustSnapshot(e).TLBEntries).To(HaveLen(2))

			translateAll(e, 2)

			Expect(mustSnapshot(e).TLBEntries).To(Equal(
				[]tlb.Entry{{Page: 2, Frame: 0}}))
		})
	})

	Context("with LRU replacement", func() {
		It("should evict the least recently used page", func() {
			configure(8, 2, 1, vm.PolicyLRU)

			results := translateAll(e, 0, 1, 0, 2)

			Expect(results[2].Outcome).To(Equal(OutcomeTableHit))
			Expect(results[3].Evicted).To(Equal(1))
			Expect(mustSnapshot(e).ResidentPages()).To(ConsistOf(0, 2))
		})

		It("should pick the second page after the first is re-accessed", func() {
			n := 4
			configure(16, n, 2, vm.PolicyLRU)

			for p := 0; p < n; p++ {
				translateAll(e, p)
			}

			translateAll(e, 0)
			results := translateAll(e, n)

			Expect(results[0].Evicted).To(Equal(1))
		})
	})

	Context("secondary store", func() {
		It("should bring back the same page without duplicating it", func() {
			configure(4, 1, 1, vm.PolicyFIFO)

			results := translateAll(e, 0, 1, 0)

			Expect(results[2].Outcome).To(Equal(OutcomeFault))
			Expect(results[2].Evicted).To(Equal(1))

			s := mustSnapshot(e)
			Expect(s.StoredPages).To(Equal([]int{1}))
			Expect(s.Pages[0].LoadCount).To(Equal(2))
			Expect(s.Pages[0].InMemory).To(BeTrue())
			Expect(s.Pages[1].InMemory).To(BeFalse())
		})

		It("should refuse to load an evicted page that left the store", func() {
			configure(4, 1, 1, vm.PolicyFIFO)
			translateAll(e, 0, 1)
			e.store.Clear()

			_, err := e.Translate(ctx, 0)

			Expect(err).To(MatchError(vm.ErrInconsistentStoreState))
			Expect(mustSnapshot(e).ResidentPages()).To(Equal([]int{1}))
			Expect(e.Statistics().Replacements).To(Equal(uint64(1)))
		})
	})

	Context("reset", func() {
		It("should go back to the configured state", func() {
			configure(8, 2, 1, vm.PolicyLRU)
			fresh := mustSnapshot(e)

			translateAll(e, 0, 1, 2, 3)
			Expect(e.Reset()).To(Succeed())

			Expect(mustSnapshot(e)).To(Equal(fresh))
		})

		It("should be idempotent", func() {
			configure(8, 2, 1, vm.PolicyFIFO)
			translateAll(e, 0, 1, 2)

			Expect(e.Reset()).To(Succeed())
			once := mustSnapshot(e)
			Expect(e.Reset()).To(Succeed())

			Expect(mustSnapshot(e)).To(Equal(once))
		})

		It("should replay the same results", func() {
			configure(8, 2, 1, vm.PolicyLRU)
			first := translateAll(e, 0, 1, 0, 2, 1)

			Expect(e.Reset()).To(Succeed())

			Expect(translateAll(e, 0, 1, 0, 2, 1)).To(Equal(first))
		})
	})

	Context("batches", func() {
		BeforeEach(func() {
			configure(4, 2, 1, vm.PolicyFIFO)
		})

		It("should record out of range pages and go on", func() {
			br, err := e.LoadBatch(ctx, 0x1A, []int{0, 9, 1})

			Expect(err).NotTo(HaveOccurred())
			Expect(br.BaseAddress).To(Equal(0x1A))
			Expect(br.Entries).To(HaveLen(3))
			Expect(br.Entries[1].Err).To(MatchError(vm.ErrOutOfRangeAddress))
			Expect(br.Entries[1].Error).NotTo(BeEmpty())
			Expect(br.Entries[1].Result.Page).To(Equal(9))
			Expect(br.Entries[1].Result.Frame).To(Equal(vm.NoFrame))
			Expect(br.Entries[2].Result.Outcome).To(Equal(OutcomeFault))
			Expect(br.Stats.Accesses).To(Equal(uint64(2)))
		})

		It("should stop when the context is done", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			br, err := e.LoadBatch(cancelled, 0, []int{0, 1})

			Expect(err).To(MatchError(context.Canceled))
			Expect(br.Entries).To(BeEmpty())
		})
	})

	Context("pacing", func() {
		It("should not change the outcome when cut short", func() {
			e = MakeBuilder().WithPacing(time.Hour).Build("MMU")
			configure(8, 2, 1, vm.PolicyFIFO)

			short, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
			defer cancel()

			res, err := e.Translate(short, 3)

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Outcome).To(Equal(OutcomeFault))
			Expect(mustSnapshot(e).ResidentPages()).To(Equal([]int{3}))
		})
	})

	Context("concurrent callers", func() {
		It("should serve requests one at a time", func() {
			configure(16, 3, 2, vm.PolicyLRU)

			var wg sync.WaitGroup
			for g := 0; g < 8; g++ {
				wg.Add(1)

				go func(g int) {
					defer GinkgoRecover()
					defer wg.Done()

					for i := 0; i < 50; i++ {
						_, err := e.Translate(ctx, (g*7+i)%16)
						Expect(err).NotTo(HaveOccurred())
					}
				}(g)
			}

			wg.Wait()

			Expect(e.Statistics().Accesses).To(Equal(uint64(400)))
			Expect(e.Now()).To(Equal(400.0))
		})
	})

	Context("with an injected policy", func() {
		var (
			mockCtrl *gomock.Controller
			policy   *MockPolicy
		)

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
			policy = NewMockPolicy(mockCtrl)
			policy.EXPECT().Kind().Return(vm.PolicyFIFO).AnyTimes()

			e = MakeBuilder().
				WithPolicyFactory(func(vm.PolicyKind) (replacement.Policy, error) {
					return policy, nil
				}).
				Build("MMU")
		})

		AfterEach(func() {
			mockCtrl.Finish()
		})

		It("should fail when the policy has no victim", func() {
			policy.EXPECT().OnLoad(0)
			policy.EXPECT().SelectVictim().Return(0, false)
			policy.EXPECT().Resident().Return([]int{0}).AnyTimes()
			configure(4, 1, 1, vm.PolicyFIFO)
			translateAll(e, 0)

			_, err := e.Translate(ctx, 1)

			Expect(err).To(MatchError(vm.ErrCapacityExhaustedWithNoVictim))
		})

		It("should fail when the victim is not resident", func() {
			policy.EXPECT().OnLoad(0)
			policy.EXPECT().SelectVictim().Return(3, true)
			policy.EXPECT().Resident().Return([]int{0}).AnyTimes()
			configure(4, 1, 1, vm.PolicyFIFO)
			translateAll(e, 0)

			_, err := e.Translate(ctx, 1)

			Expect(err).To(MatchError(vm.ErrCapacityExhaustedWithNoVictim))
		})

		It("should tell the policy about every step", func() {
			gomock.InOrder(
				policy.EXPECT().OnLoad(0),
				policy.EXPECT().OnAccess(0),
				policy.EXPECT().SelectVictim().Return(0, true),
				policy.EXPECT().OnEvict(0),
				policy.EXPECT().OnLoad(1),
			)
			policy.EXPECT().Resident().Return([]int{1}).AnyTimes()
			configure(4, 1, 1, vm.PolicyFIFO)

			translateAll(e, 0, 0, 1)
		})
	})
})

var _ = Describe("Engine hooks", func() {
	var (
		mockCtrl *gomock.Controller
		hook     *MockHook
		e        *Engine
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		hook = NewMockHook(mockCtrl)
		e = MakeBuilder().WithHook(hook).Build("MMU")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should report each state transition", func() {
		var events []EventKind
		var done []Result

		hook.EXPECT().Func(gomock.Any()).Do(func(ctx hooking.HookCtx) {
			Expect(ctx.Domain).To(BeIdenticalTo(e))

			switch ctx.Pos {
			case HookPosEvent:
				events = append(events, ctx.Item.(Event).Kind)
			case HookPosRequestDone:
				done = append(done, ctx.Item.(Result))
			}
		}).AnyTimes()

		Expect(e.Configure(Config{4, 1, 1, vm.PolicyFIFO})).To(Succeed())
		translateAll(e, 0, 0, 1)

		Expect(events).To(Equal([]EventKind{
			EventConfigured,
			EventTLBMiss, EventPageFault, EventLoad,
			EventTLBHit,
			EventTLBMiss, EventPageFault, EventEvict, EventLoad,
		}))
		Expect(done).To(HaveLen(3))
		Expect(done[2].Evicted).To(Equal(0))
	})

	It("should trace every request as a task", func() {
		hook.EXPECT().Func(gomock.Any()).AnyTimes()

		backend := &taskCollector{}
		tracer := hooking.NewDBTracer(e, backend)
		e.AcceptHook(tracer)

		Expect(e.Configure(Config{4, 1, 1, vm.PolicyFIFO})).To(Succeed())
		translateAll(e, 2, 3)

		Expect(backend.tasks).To(HaveLen(2))

		task := backend.tasks[1]
		Expect(task.Kind).To(Equal(TaskKindTranslation))
		Expect(task.What).To(Equal("page 3"))
		Expect(task.Where).To(Equal("MMU"))
		Expect(task.StartTime).To(Equal(1.0))
		Expect(task.EndTime).To(Equal(2.0))
		Expect(task.Steps).To(HaveLen(5))
		Expect(task.Steps[3].What).To(Equal("Evict"))
		Expect(task.Steps[4].What).To(Equal("Load"))
		Expect(task.Tags).To(ContainElement(
			hooking.Tag{What: "evicted", Detail: "2"}))
		Expect(task.Tags).To(ContainElement(
			hooking.Tag{What: string(OutcomeFault)}))
		Expect(tracer.NumInflightTasks()).To(BeZero())
	})

	It("should trace the selected pages only", func() {
		hook.EXPECT().Func(gomock.Any()).AnyTimes()

		backend := &taskCollector{}
		tracer := hooking.NewDBTracer(e, backend).
			WithFilter(PageTaskFilter([]int{3}))
		e.AcceptHook(tracer)

		Expect(e.Configure(Config{4, 2, 1, vm.PolicyFIFO})).To(Succeed())
		translateAll(e, 2, 3, 3, 1)

		Expect(backend.tasks).To(HaveLen(2))
		Expect(backend.tasks[0].What).To(Equal("page 3"))
		Expect(backend.tasks[1].What).To(Equal("page 3"))
	})

	It("should count outcomes with a tag counter", func() {
		hook.EXPECT().Func(gomock.Any()).AnyTimes()

		counter := hooking.NewTagCountTracer(nil)
		e.AcceptHook(counter)

		Expect(e.Configure(Config{4, 2, 1, vm.PolicyLRU})).To(Succeed())
		translateAll(e, 0, 1, 1, 0, 2)

		Expect(counter.GetTagCount(string(OutcomeFault))).To(Equal(uint64(3)))
		Expect(counter.GetTagCount(string(OutcomeTLBHit))).To(Equal(uint64(1)))
		Expect(counter.GetTagCount(string(OutcomeTableHit))).
			To(Equal(uint64(1)))
		Expect(counter.GetTagCount("evicted")).To(Equal(uint64(1)))
	})
})

type taskCollector struct {
	tasks []hooking.Task
}

func (c *taskCollector) Write(t hooking.Task) {
	c.tasks = append(c.tasks, t)
}

func (c *taskCollector) Flush() {}
