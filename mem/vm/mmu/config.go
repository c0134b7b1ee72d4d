package mmu

import (
	"fmt"

	"github.com/sarchlab/vmsim/mem/vm"
)

// Config sizes the components of an Engine.
type Config struct {
	AddressSpaceSize int           `json:"address_space_size"`
	NumFrames        int           `json:"num_frames"`
	TLBCapacity      int           `json:"tlb_capacity"`
	Policy           vm.PolicyKind `json:"policy"`
}

// DefaultConfig returns the configuration used when nothing else is given.
func DefaultConfig() Config {
	return Config{
		AddressSpaceSize: 16,
		NumFrames:        4,
		TLBCapacity:      2,
		Policy:           vm.PolicyFIFO,
	}
}

// Validate checks that all the sizes are positive.
func (c Config) Validate() error {
	if c.AddressSpaceSize <= 0 {
		return fmt.Errorf("%w: address space size must be positive, got %d",
			vm.ErrInvalidConfiguration, c.AddressSpaceSize)
	}

	if c.NumFrames <= 0 {
		return fmt.Errorf("%w: number of frames must be positive, got %d",
			vm.ErrInvalidConfiguration, c.NumFrames)
	}

	if c.TLBCapacity <= 0 {
		return fmt.Errorf("%w: TLB capacity must be positive, got %d",
			vm.ErrInvalidConfiguration, c.TLBCapacity)
	}

	return nil
}
