package vm

import "errors"

// Errors reported to the caller of the engine.
var (
	// ErrOutOfRangeAddress is returned when a page number falls outside the
	// configured address space.
	ErrOutOfRangeAddress = errors.New("out of range address")

	// ErrInvalidConfiguration is returned for non-positive sizes, unknown
	// policies, or any operation attempted before configuration.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInconsistentStoreState means a faulting page can be found neither in
	// the address space nor in the secondary store. The run should be
	// considered broken.
	ErrInconsistentStoreState = errors.New("inconsistent store state")

	// ErrCapacityExhaustedWithNoVictim means the frame pool is full but the
	// replacement policy cannot name a resident page.
	ErrCapacityExhaustedWithNoVictim = errors.New(
		"capacity exhausted with no victim")
)

// Component precondition errors.
var (
	ErrFrameOccupied       = errors.New("frame is occupied")
	ErrFrameEmpty          = errors.New("frame is empty")
	ErrFrameOutOfRange     = errors.New("frame number out of range")
	ErrFrameNotOwned       = errors.New("frame is not owned by page")
	ErrPageAlreadyResident = errors.New("page is already resident")
	ErrPageNotStored       = errors.New("page is not in secondary store")
)
