package mmu

import (
	"time"

	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/mem/vm/replacement"
	"github.com/sarchlab/vmsim/sim/hooking"
	"github.com/sarchlab/vmsim/sim/id"
	"github.com/sarchlab/vmsim/sim/naming"
)

// A PolicyFactory creates the replacement policy of a kind.
type PolicyFactory func(kind vm.PolicyKind) (replacement.Policy, error)

// A Builder can build an Engine.
type Builder struct {
	pacing        time.Duration
	stats         *vm.Statistics
	idGenerator   id.IDGenerator
	policyFactory PolicyFactory
	hooks         []hooking.Hook
}

// MakeBuilder creates a new builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		policyFactory: replacement.New,
	}
}

// WithPacing sets the delay inserted after every completed translation. The
// delay only slows the engine down so that a live view can follow it.
func (b Builder) WithPacing(d time.Duration) Builder {
	b.pacing = d
	return b
}

// WithStatistics sets the Statistics the engine updates. The engine resets it
// on every configuration.
func (b Builder) WithStatistics(stats *vm.Statistics) Builder {
	b.stats = stats
	return b
}

// WithIDGenerator sets how task IDs of traced requests are generated.
func (b Builder) WithIDGenerator(g id.IDGenerator) Builder {
	b.idGenerator = g
	return b
}

// WithPolicyFactory replaces the factory that creates replacement policies.
func (b Builder) WithPolicyFactory(f PolicyFactory) Builder {
	b.policyFactory = f
	return b
}

// WithHook registers a hook on the engine before it is used.
func (b Builder) WithHook(h hooking.Hook) Builder {
	b.hooks = append(b.hooks[:len(b.hooks):len(b.hooks)], h)
	return b
}

// Build creates an unconfigured Engine.
func (b Builder) Build(name string) *Engine {
	e := &Engine{
		NamedBase: naming.MakeNamedBase(name),
		pacing:    b.pacing,
		stats:     b.stats,
		newPolicy: b.policyFactory,
	}

	if e.stats == nil {
		e.stats = &vm.Statistics{}
	}

	e.idGenerator = b.idGenerator
	if e.idGenerator == nil {
		e.idGenerator = id.NewIDGenerator()
	}

	for _, h := range b.hooks {
		e.HookableBase.AcceptHook(h)
	}

	return e
}
