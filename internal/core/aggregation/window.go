package aggregation

import (
	"fmt"
)

const (
	// MaxOrderAgeMs is the fixed admissible order age. It is independent of
	// the ring length: an order at or beyond this age is rejected as stale.
	MaxOrderAgeMs int64 = 60000

	// DefaultWindowLengthMs is the default ring capacity.
	DefaultWindowLengthMs = 60000
)

// WindowSpec represents a validated ring length in milliseconds.
type WindowSpec struct {
	LengthMs int64
}

// NewWindowSpec validates a ring length.
func NewWindowSpec(lengthMs int) (WindowSpec, error) {
	if lengthMs <= 0 {
		return WindowSpec{}, fmt.Errorf("%w: window length must be positive, got %d", ErrInvalidWindow, lengthMs)
	}
	return WindowSpec{LengthMs: int64(lengthMs)}, nil
}

// IndexFor maps a timestamp to its ring slot.
// Example: with a 60000 ms window, 1700000012345 → 32345.
func (w WindowSpec) IndexFor(timestampMs int64) int {
	idx := timestampMs % w.LengthMs
	if idx < 0 {
		idx += w.LengthMs
	}
	return int(idx)
}

// ValidatePeriod rejects query periods the ring cannot answer without
// aliasing unrelated timestamps onto the same slot.
func (w WindowSpec) ValidatePeriod(periodMs int32) error {
	if periodMs <= 0 {
		return fmt.Errorf("%w: period must be positive, got %d", ErrInvalidPeriod, periodMs)
	}
	if int64(periodMs) > w.LengthMs {
		return fmt.Errorf("%w: period %d ms exceeds window length %d ms", ErrInvalidPeriod, periodMs, w.LengthMs)
	}
	return nil
}
