package aggregation

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrOldOrder matches any *OldOrderError.
	ErrOldOrder = errors.New("order is older than the admissible age")
	// ErrFutureOrder matches any *FutureOrderError.
	ErrFutureOrder = errors.New("order timestamp is in the future")

	ErrInvalidWindow           = errors.New("invalid window length")
	ErrInvalidPeriod           = errors.New("invalid query period")
	ErrUnknownConcurrencyModel = errors.New("unknown concurrency model")
)

// OldOrderError is returned by Engine.AddOrder for an order at or past MaxOrderAgeMs.
type OldOrderError struct {
	Now       int64
	Timestamp int64
}

func (e *OldOrderError) Error() string {
	return fmt.Sprintf("order timestamp is older than %d ms. Current time %s order timestamp %s",
		MaxOrderAgeMs, formatMillis(e.Now), formatMillis(e.Timestamp))
}

func (e *OldOrderError) Is(target error) bool {
	return target == ErrOldOrder
}

// FutureOrderError is returned by Engine.AddOrder for an order later than now.
type FutureOrderError struct {
	Now       int64
	Timestamp int64
}

func (e *FutureOrderError) Error() string {
	return fmt.Sprintf("order timestamp is in the future. Current time %s order timestamp %s",
		formatMillis(e.Now), formatMillis(e.Timestamp))
}

func (e *FutureOrderError) Is(target error) bool {
	return target == ErrFutureOrder
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339Nano)
}
