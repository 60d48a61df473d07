package aggregation

import (
	"github.com/shopspring/decimal"
)

// Aggregator defines the reduce semantics of one decimal field of a bucket.
// The same operators fold orders into a bucket and buckets into a query result,
// so a bucket and a window always agree on what sum/min/max mean.
type Aggregator interface {
	// Initial returns the field value after the very first amount.
	Initial(incoming decimal.Decimal) decimal.Decimal

	// Apply folds an incoming value into an existing aggregate.
	Apply(current, incoming decimal.Decimal) decimal.Decimal
}

// Field operators used by Snapshot and the query fold.
var (
	SumOp Aggregator = sumAgg{}
	MinOp Aggregator = minAgg{}
	MaxOp Aggregator = maxAgg{}
)

// sumAgg accumulates the sum of incoming values.
type sumAgg struct{}

func (sumAgg) Initial(v decimal.Decimal) decimal.Decimal      { return v }
func (sumAgg) Apply(cur, inc decimal.Decimal) decimal.Decimal { return cur.Add(inc) }

// minAgg tracks the minimum value seen.
type minAgg struct{}

func (minAgg) Initial(v decimal.Decimal) decimal.Decimal { return v }
func (minAgg) Apply(cur, inc decimal.Decimal) decimal.Decimal {
	if inc.LessThan(cur) {
		return inc
	}
	return cur
}

// maxAgg tracks the maximum value seen.
type maxAgg struct{}

func (maxAgg) Initial(v decimal.Decimal) decimal.Decimal { return v }
func (maxAgg) Apply(cur, inc decimal.Decimal) decimal.Decimal {
	if inc.GreaterThan(cur) {
		return inc
	}
	return cur
}
