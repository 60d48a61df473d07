package statistics

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	v1 "github.com/kasunkula/middys-assignment/internal/api/v1"
	"github.com/kasunkula/middys-assignment/internal/core/aggregation"
	"github.com/kasunkula/middys-assignment/internal/metrics"
	"golang.org/x/sync/singleflight"
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid statistics query")

// Source is the read side of the statistics engine.
type Source interface {
	Query(nowMs int64, periodMs int32) (aggregation.Statistics, error)
}

// Service serves window statistics over a fixed default period.
type Service struct {
	source   Source
	periodMs int32
	nowFn    func() time.Time

	// Concurrent reads for the same (now, period) share one ring scan.
	queryGroup singleflight.Group
}

// NewService creates a statistics service answering over periodMs by default.
func NewService(source Source, periodMs int32) *Service {
	if source == nil {
		panic("statistics: source must not be nil")
	}
	return &Service{
		source:   source,
		periodMs: periodMs,
		nowFn:    time.Now,
	}
}

// PeriodMs returns the period used when a request does not name one.
func (s *Service) PeriodMs() int32 {
	return s.periodMs
}

// GetStatistics aggregates the orders of the last periodMs ending now.
// A periodMs outside 1..window length is reported as ErrInvalidQuery.
func (s *Service) GetStatistics(ctx context.Context, periodMs int32) (*v1.StatisticsResponse, error) {
	nowMs := s.nowFn().UnixMilli()
	key := strconv.FormatInt(nowMs, 10) + ":" + strconv.FormatInt(int64(periodMs), 10)

	result, err, _ := s.queryGroup.Do(key, func() (interface{}, error) {
		start := time.Now()
		stats, err := s.source.Query(nowMs, periodMs)
		metrics.QueryLatency.Observe(time.Since(start).Seconds())
		return stats, err
	})
	if err != nil {
		if errors.Is(err, aggregation.ErrInvalidPeriod) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return toResponse(result.(aggregation.Statistics)), nil
}

func toResponse(stats aggregation.Statistics) *v1.StatisticsResponse {
	return &v1.StatisticsResponse{
		Sum:   aggregation.FormatStat(stats.Sum),
		Avg:   aggregation.FormatStat(stats.Avg),
		Max:   aggregation.FormatStat(stats.Max),
		Min:   aggregation.FormatStat(stats.Min),
		Count: stats.Count,
	}
}
