package orders

import (
	"fmt"
	"time"

	v1 "github.com/kasunkula/middys-assignment/internal/api/v1"
	"github.com/kasunkula/middys-assignment/internal/core/aggregation"
)

// parseOrder converts a validated request into an engine order.
// It only parses; age and future checks belong to the engine.
func parseOrder(req *v1.OrderRequest) (aggregation.Order, error) {
	amount, err := aggregation.ParseAmount(req.Amount.String())
	if err != nil {
		return aggregation.Order{}, err
	}

	ts, err := parseTimestamp(*req.Timestamp)
	if err != nil {
		return aggregation.Order{}, fmt.Errorf("invalid timestamp %q: %w", *req.Timestamp, err)
	}

	return aggregation.Order{Amount: amount, Timestamp: ts.UnixMilli()}, nil
}

// parseTimestamp accepts ISO-8601 instants with a zone designator,
// e.g. 2018-07-17T09:59:51.312Z or 2018-07-17T11:59:51+02:00.
func parseTimestamp(s string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return ts.UTC(), nil
}
