package radix

import "errors"

// Configuration errors
var (
	ErrUnsupportedWidth = errors.New("radix: digit is wider than the value type")
	ErrPoolClosed       = errors.New("radix: thread pool is closed")
)

// Verification errors
var (
	ErrNotSorted = errors.New("radix: sequence is not sorted")
)

// ErrCorruptPlan is wrapped by the panics raised when the per-pass accounting
// does not add up: bucket sizes that do not sum to the element count, an
// arena allocation past its window, or a write group that over- or
// under-runs its span. These indicate a logic defect, never a transient
// condition.
var ErrCorruptPlan = errors.New("radix: corrupted partition plan")
