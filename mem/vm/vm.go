// Package vm provides the shared model of the address-translation engine:
// pages, the address space, statistics, policy kinds and the error taxonomy.
//
// The components live in sub-packages (framepool, backingstore, pagetable,
// tlb, replacement) and are orchestrated by package mmu.
package vm

import (
	"fmt"
	"strings"
)

// PolicyKind selects a page-replacement policy.
type PolicyKind string

// Supported replacement policies.
const (
	PolicyFIFO PolicyKind = "FIFO"
	PolicyLRU  PolicyKind = "LRU"
)

// ParsePolicyKind converts a case-insensitive policy name into a PolicyKind.
func ParsePolicyKind(s string) (PolicyKind, error) {
	switch PolicyKind(strings.ToUpper(strings.TrimSpace(s))) {
	case PolicyFIFO:
		return PolicyFIFO, nil
	case PolicyLRU:
		return PolicyLRU, nil
	}

	return "", fmt.Errorf("%w: unknown policy kind %q",
		ErrInvalidConfiguration, s)
}

// NoFrame is the frame number of a page that is not resident.
const NoFrame = -1
