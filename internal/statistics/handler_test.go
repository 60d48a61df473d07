package statistics

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	v1 "github.com/kasunkula/middys-assignment/internal/api/v1"
	"github.com/kasunkula/middys-assignment/internal/core/aggregation"
	httperr "github.com/kasunkula/middys-assignment/internal/core/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nowMs int64 = 1_531_821_600_000 // 2018-07-17T10:00:00Z

type errSource struct{ err error }

func (s errSource) Query(int64, int32) (aggregation.Statistics, error) {
	return aggregation.Statistics{}, s.err
}

func setupRouter(t *testing.T, source Source) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := NewService(source, 60000)
	svc.nowFn = func() time.Time { return time.UnixMilli(nowMs) }

	r := gin.New()
	svc.RegisterRoutes(r)
	return r
}

func seededEngine(t *testing.T) *aggregation.Engine {
	t.Helper()
	engine, err := aggregation.NewEngine(aggregation.DefaultWindowLengthMs, aggregation.Synchronous)
	require.NoError(t, err)

	for i, amount := range []string{"100.10", "50.235", "200000.49"} {
		require.NoError(t, engine.AddOrder(aggregation.Order{
			Amount:    decimal.RequireFromString(amount),
			Timestamp: nowMs - int64(i+1)*10_000,
		}, nowMs))
	}
	return engine
}

func getStatistics(r http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestHandleGetStatistics_Success(t *testing.T) {
	r := setupRouter(t, seededEngine(t))

	resp := getStatistics(r, "/v1/statistics")
	require.Equal(t, http.StatusOK, resp.Code)

	var body v1.StatisticsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.Equal(t, v1.StatisticsResponse{
		Sum:   "200150.83",
		Avg:   "66716.94",
		Max:   "200000.49",
		Min:   "50.24",
		Count: 3,
	}, body)
}

func TestHandleGetStatistics_EmptyWindow(t *testing.T) {
	engine, err := aggregation.NewEngine(aggregation.DefaultWindowLengthMs, aggregation.LockFree)
	require.NoError(t, err)
	r := setupRouter(t, engine)

	resp := getStatistics(r, "/v1/statistics")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"sum":"0.00","avg":"0.00","max":"0.00","min":"0.00","count":0}`, resp.Body.String())
}

func TestHandleGetStatistics_PeriodOverride(t *testing.T) {
	r := setupRouter(t, seededEngine(t))

	resp := getStatistics(r, "/v1/statistics?period_ms=15000")
	require.Equal(t, http.StatusOK, resp.Code)

	var body v1.StatisticsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Count)
	assert.Equal(t, "100.10", body.Sum)
}

func TestHandleGetStatistics_DefaultPeriod(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotPeriod int32
	svc := NewService(sourceFunc(func(_ int64, periodMs int32) (aggregation.Statistics, error) {
		gotPeriod = periodMs
		return aggregation.ZeroStatistics(), nil
	}), 30000)
	r := gin.New()
	svc.RegisterRoutes(r)

	resp := getStatistics(r, "/v1/statistics")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int32(30000), gotPeriod)
}

func TestHandleGetStatistics_InvalidPeriod(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"zero", "?period_ms=0"},
		{"negative", "?period_ms=-5"},
		{"not a number", "?period_ms=abc"},
		{"longer than window", "?period_ms=60001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(t, seededEngine(t))

			resp := getStatistics(r, "/v1/statistics"+tt.query)
			require.Equal(t, http.StatusBadRequest, resp.Code)

			var errResp httperr.ErrorResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
			assert.Equal(t, httperr.HttpInvalidQueryError, errResp.ErrorType)
		})
	}
}

func TestHandleGetStatistics_SourceFailure(t *testing.T) {
	r := setupRouter(t, errSource{err: errors.New("boom")})

	resp := getStatistics(r, "/v1/statistics")
	require.Equal(t, http.StatusInternalServerError, resp.Code)

	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	assert.Equal(t, httperr.HttpInternalError, errResp.ErrorType)
}
