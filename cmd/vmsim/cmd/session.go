package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/vmsim/datarecording"
	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/mem/vm/mmu"
	"github.com/sarchlab/vmsim/sim/hooking"
	"github.com/sarchlab/vmsim/sim/id"
	"github.com/sarchlab/vmsim/tracing"
)

// session is a configured engine plus the hooks selected by the flags.
type session struct {
	engine    *mmu.Engine
	tracer    *hooking.DBTracer
	outcomes  *hooking.TagCountTracer
	recorders []datarecording.DataRecorder
}

func configFromFlags(cmd *cobra.Command) (mmu.Config, error) {
	flags := cmd.Flags()

	space, _ := flags.GetInt("space")
	frames, _ := flags.GetInt("frames")
	tlbSize, _ := flags.GetInt("tlb")
	policyName, _ := flags.GetString("policy")

	policy, err := vm.ParsePolicyKind(policyName)
	if err != nil {
		return mmu.Config{}, err
	}

	cfg := mmu.Config{
		AddressSpaceSize: space,
		NumFrames:        frames,
		TLBCapacity:      tlbSize,
		Policy:           policy,
	}

	return cfg, cfg.Validate()
}

// newSession builds and configures an engine. Extra hooks are attached
// before the engine is configured.
func newSession(
	cmd *cobra.Command,
	logOut io.Writer,
	hooks ...hooking.Hook,
) (*session, error) {
	cfg, err := configFromFlags(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	pacing, _ := flags.GetDuration("pacing")
	logEvents, _ := flags.GetBool("log")
	traceDB, _ := flags.GetString("trace-db")
	recordDB, _ := flags.GetString("record-db")
	tracePages, _ := flags.GetString("trace-pages")
	parallelIDs, _ := flags.GetBool("parallel-ids")

	var traceFilter hooking.TaskFilter
	if tracePages != "" {
		pages, err := mmu.ParseHexPageList(tracePages)
		if err != nil {
			return nil, err
		}

		traceFilter = mmu.PageTaskFilter(pages)
	}

	outcomes := hooking.NewTagCountTracer(nil)

	builder := mmu.MakeBuilder().
		WithPacing(pacing).
		WithHook(outcomes)
	if parallelIDs {
		builder = builder.WithIDGenerator(id.NewParallelIDGenerator())
	}
	for _, h := range hooks {
		builder = builder.WithHook(h)
	}

	if logEvents {
		builder = builder.WithHook(mmu.NewEventLogger(log.New(logOut, "", 0)))
	}

	s := &session{engine: builder.Build("MMU"), outcomes: outcomes}

	recorders := make(map[string]datarecording.DataRecorder)
	recorderAt := func(path string) datarecording.DataRecorder {
		if r, ok := recorders[path]; ok {
			return r
		}

		r := datarecording.New(path)
		recorders[path] = r
		s.recorders = append(s.recorders, r)

		return r
	}

	if traceDB != "" {
		writer := tracing.NewSQLiteTraceWriter(recorderAt(traceDB))
		s.tracer = hooking.NewDBTracer(s.engine, writer).WithFilter(traceFilter)
		s.engine.AcceptHook(s.tracer)
	}

	if recordDB != "" {
		s.engine.AcceptHook(mmu.NewRequestRecorder(recorderAt(recordDB)))
	}

	if err := s.engine.Configure(cfg); err != nil {
		s.close()
		return nil, err
	}

	return s, nil
}

// close writes the collected traces and records.
func (s *session) close() {
	if s.tracer != nil {
		s.tracer.Terminate()
	}

	for _, r := range s.recorders {
		if err := r.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close recorder: %v\n", err)
		}
	}
}

func printBatch(w io.Writer, br mmu.BatchResult) {
	fmt.Fprintf(w, "Base address %X, %d pages\n", br.BaseAddress, len(br.Entries))

	outOfRange := 0

	for _, e := range br.Entries {
		if e.Err != nil {
			outOfRange++
			fmt.Fprintf(w, "%4d  page %-4X  %v\n", e.Index, e.Page, e.Err)

			continue
		}

		printResult(w, e.Index, e.Result)
	}

	printStats(w, br.Stats)
	fmt.Fprintf(w, "Out of range: %d\n", outOfRange)
}

// printOutcomes prints how many requests ended with each outcome.
func printOutcomes(w io.Writer, outcomes *hooking.TagCountTracer) {
	for _, o := range []mmu.Outcome{
		mmu.OutcomeTLBHit, mmu.OutcomeTableHit, mmu.OutcomeFault,
	} {
		fmt.Fprintf(w, "%s: %d\n", o, outcomes.GetTagCount(string(o)))
	}
}

func printResult(w io.Writer, index int, res mmu.Result) {
	line := fmt.Sprintf("%4d  page %-4X  %-8s  frame %d",
		index, res.Page, res.Outcome, res.Frame)
	if res.HasEvicted {
		line += fmt.Sprintf("  evicted page %X", res.Evicted)
	}

	fmt.Fprintln(w, line)
}

func printStats(w io.Writer, s vm.Statistics) {
	fmt.Fprintf(w, "Accesses: %d\n", s.Accesses)
	fmt.Fprintf(w, "TLB hits: %d, TLB misses: %d, hit ratio: %.1f%%\n",
		s.TLBHits, s.TLBMisses, s.HitRatio())
	fmt.Fprintf(w, "Page table hits: %d\n", s.PageTableHits)
	fmt.Fprintf(w, "Page faults: %d, fault rate: %.1f%%\n",
		s.PageFaults, s.FaultRate())
	fmt.Fprintf(w, "Replacements: %d\n", s.Replacements)
	fmt.Fprintf(w, "Memory: %d/%d frames (%.1f%%)\n",
		s.ResidentFrames, s.TotalFrames, s.OccupancyPercent())
}
