package port

import (
	"context"

	"github.com/openparlor/parlor-ctl/internal/errors"
)

// Allocator finds free ports by linear scan from a base port.
type Allocator struct {
	Probe Prober
	Scope Scope
}

// NewAllocator creates an allocator probing both host and runtime.
func NewAllocator(lister PortLister) *Allocator {
	return &Allocator{
		Probe: &Probe{Runtime: lister},
		Scope: ScopeBoth,
	}
}

// Allocate returns the first free port in [base, base+maxAttempts).
// Ports in used (those already recorded in the registry) are skipped
// without probing. Fails with PortRangeExhausted when the attempt budget
// runs out.
//
// Callers must hold the deploy lock for the full probe-then-record
// sequence; two concurrent allocations can otherwise both pick the same
// port.
func (a *Allocator) Allocate(ctx context.Context, base, maxAttempts int, used map[int]bool) (int, error) {
	for i := 0; i < maxAttempts; i++ {
		candidate := base + i
		if used[candidate] {
			continue
		}
		if a.Probe.IsFree(ctx, candidate, a.Scope) {
			return candidate, nil
		}
	}

	return 0, errors.PortRangeExhausted(base, maxAttempts)
}
