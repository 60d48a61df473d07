package aggregation

import (
	"fmt"
	"log/slog"
)

// Engine is the sliding-window statistics aggregator.
//
// It owns a ring of WindowSpec.LengthMs buckets, one per millisecond slot.
// An order lands in slot Timestamp mod LengthMs; a slot is recycled when an
// order for a different timestamp arrives. There is no lock across slots:
// each bucket synchronizes itself, so writers on different slots never
// contend and a query is a union of independently consistent snapshots.
type Engine struct {
	window  WindowSpec
	model   ConcurrencyModel
	buckets []Bucket
}

// NewEngine allocates a ring of windowLengthMs empty buckets backed by model.
func NewEngine(windowLengthMs int, model ConcurrencyModel) (*Engine, error) {
	window, err := NewWindowSpec(windowLengthMs)
	if err != nil {
		return nil, err
	}
	newBucket, err := BucketFactory(model)
	if err != nil {
		return nil, err
	}

	buckets := make([]Bucket, window.LengthMs)
	for i := range buckets {
		buckets[i] = newBucket()
	}

	if window.LengthMs < MaxOrderAgeMs {
		slog.Warn("Window is shorter than the admissible order age; late orders may recycle slots still inside the query period",
			"window_length_ms", window.LengthMs,
			"max_order_age_ms", MaxOrderAgeMs,
		)
	}

	slog.Info("Statistics engine initialized",
		"window_length_ms", window.LengthMs,
		"concurrency_model", model,
	)

	return &Engine{
		window:  window,
		model:   model,
		buckets: buckets,
	}, nil
}

// Window returns the ring geometry.
func (e *Engine) Window() WindowSpec {
	return e.window
}

// Model returns the concurrency model backing the buckets.
func (e *Engine) Model() ConcurrencyModel {
	return e.model
}

// AddOrder folds o into its ring slot.
// It returns *OldOrderError when o is at or past MaxOrderAgeMs relative to
// nowMs and *FutureOrderError when o is later than nowMs. Both checks run
// before any bucket is touched.
func (e *Engine) AddOrder(o Order, nowMs int64) error {
	if o.Timestamp <= nowMs-MaxOrderAgeMs {
		return &OldOrderError{Now: nowMs, Timestamp: o.Timestamp}
	}
	if o.Timestamp > nowMs {
		return &FutureOrderError{Now: nowMs, Timestamp: o.Timestamp}
	}

	e.buckets[e.window.IndexFor(o.Timestamp)].Add(o)
	return nil
}

// DeleteAll resets every bucket. Each reset is atomic on its own; orders
// added concurrently on other slots during the sweep may survive it.
func (e *Engine) DeleteAll() {
	for _, b := range e.buckets {
		b.Reset()
	}
}

// Query aggregates every bucket whose owner lies in (nowMs-periodMs, nowMs].
// An order exactly periodMs old is excluded; one a millisecond newer is included.
func (e *Engine) Query(nowMs int64, periodMs int32) (Statistics, error) {
	if err := e.window.ValidatePeriod(periodMs); err != nil {
		return Statistics{}, fmt.Errorf("query statistics: %w", err)
	}

	start := nowMs - int64(periodMs)

	var acc accumulator
	for _, b := range e.buckets {
		s := b.Snapshot()
		if s.Empty() || s.Owner <= start || s.Owner > nowMs {
			continue
		}
		acc.merge(s)
	}

	return acc.statistics(), nil
}
