package aggregation

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Bucket accumulates the orders of one ring slot.
// Implementations must be safe for concurrent use and must never expose a
// torn Snapshot (fields from two different instants).
type Bucket interface {
	// Add folds o into the bucket, replacing a stale owner first.
	Add(o Order)

	// Reset returns the bucket to the empty state.
	Reset()

	// Snapshot returns a coherent copy of the bucket state.
	Snapshot() Snapshot
}

// ConcurrencyModel selects the Bucket implementation backing an Engine.
// Every model has identical external behavior.
type ConcurrencyModel string

const (
	// LockFree buckets swap immutable snapshots with compare-and-swap.
	LockFree ConcurrencyModel = "lock-free"
	// Synchronous buckets guard their state with a per-bucket mutex.
	Synchronous ConcurrencyModel = "synchronous"
)

// NewBucketFunc constructs an empty bucket.
type NewBucketFunc func() Bucket

// bucketFactories is the registry of supported concurrency models.
// To add a model: implement Bucket and register a constructor here.
var bucketFactories = map[ConcurrencyModel]NewBucketFunc{
	LockFree:    func() Bucket { return NewLockFreeBucket() },
	Synchronous: func() Bucket { return NewSynchronousBucket() },
}

// BucketFactory returns the constructor registered for model.
func BucketFactory(model ConcurrencyModel) (NewBucketFunc, error) {
	fn, ok := bucketFactories[model]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownConcurrencyModel, model, strings.Join(ConcurrencyModels(), ", "))
	}
	return fn, nil
}

// ValidConcurrencyModel reports whether model is a registered concurrency model.
func ValidConcurrencyModel(model string) bool {
	_, ok := bucketFactories[ConcurrencyModel(model)]
	return ok
}

// ConcurrencyModels lists the registered model names in sorted order.
func ConcurrencyModels() []string {
	out := make([]string, 0, len(bucketFactories))
	for m := range bucketFactories {
		out = append(out, string(m))
	}
	sort.Strings(out)
	return out
}

func logEviction(evicted, owner int64) {
	slog.Debug("Timestamp changed, resetting bucket",
		"from", evicted,
		"to", owner,
	)
}
