package aggregation

import (
	"github.com/shopspring/decimal"
)

// Order is one accepted monetary transaction.
// It is consumed once by the engine; only its effect on a bucket is retained.
type Order struct {
	Amount    decimal.Decimal
	Timestamp int64 // epoch milliseconds
}

// Snapshot is an immutable copy of a bucket's aggregate state.
//
// Owner is the single timestamp the bucket currently represents; 0 means the
// bucket is empty. A non-empty snapshot never blends two timestamps: every
// amount folded into it carried Timestamp == Owner.
//
// An empty snapshot carries no min/max sentinels. The first order folded
// after a reset initializes Min and Max from its own amount.
type Snapshot struct {
	Owner int64
	Count int64
	Sum   decimal.Decimal
	Min   decimal.Decimal
	Max   decimal.Decimal
}

// Empty reports whether the snapshot holds no orders.
func (s Snapshot) Empty() bool {
	return s.Count == 0
}

// add returns the successor state after folding o into s, applying the
// reuse rule: an empty bucket or one owned by another timestamp is replaced
// by a bucket holding exactly o.
// evicted is the stale owner that was replaced, or 0 if nothing was evicted.
func (s Snapshot) add(o Order) (next Snapshot, evicted int64) {
	if s.Count == 0 || s.Owner != o.Timestamp {
		if s.Count > 0 {
			evicted = s.Owner
		}
		return Snapshot{
			Owner: o.Timestamp,
			Count: 1,
			Sum:   SumOp.Initial(o.Amount),
			Min:   MinOp.Initial(o.Amount),
			Max:   MaxOp.Initial(o.Amount),
		}, evicted
	}

	return Snapshot{
		Owner: s.Owner,
		Count: s.Count + 1,
		Sum:   SumOp.Apply(s.Sum, o.Amount),
		Min:   MinOp.Apply(s.Min, o.Amount),
		Max:   MaxOp.Apply(s.Max, o.Amount),
	}, 0
}

// Statistics is the result of a window query.
// Sum, Avg, Max and Min are rounded to StatsScale fractional digits.
type Statistics struct {
	Sum   decimal.Decimal
	Avg   decimal.Decimal
	Max   decimal.Decimal
	Min   decimal.Decimal
	Count int64
}

// accumulator folds bucket snapshots into a Statistics value.
type accumulator struct {
	count int64
	sum   decimal.Decimal
	min   decimal.Decimal
	max   decimal.Decimal
}

func (a *accumulator) merge(s Snapshot) {
	if s.Count == 0 {
		return
	}
	if a.count == 0 {
		a.sum = SumOp.Initial(s.Sum)
		a.min = MinOp.Initial(s.Min)
		a.max = MaxOp.Initial(s.Max)
	} else {
		a.sum = SumOp.Apply(a.sum, s.Sum)
		a.min = MinOp.Apply(a.min, s.Min)
		a.max = MaxOp.Apply(a.max, s.Max)
	}
	a.count += s.Count
}

func (a *accumulator) statistics() Statistics {
	if a.count == 0 {
		return ZeroStatistics()
	}
	sum := roundStat(a.sum)
	return Statistics{
		Sum:   sum,
		Avg:   sum.DivRound(decimal.NewFromInt(a.count), StatsScale),
		Max:   roundStat(a.max),
		Min:   roundStat(a.min),
		Count: a.count,
	}
}

// ZeroStatistics is the result of a query that matched no orders.
func ZeroStatistics() Statistics {
	zero := roundStat(decimal.Zero)
	return Statistics{Sum: zero, Avg: zero, Max: zero, Min: zero}
}
