package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gaswhisperer/gaswhisperer/advisor"
	"github.com/gaswhisperer/gaswhisperer/gasstation"
	"github.com/gaswhisperer/gaswhisperer/rpc/handler"
	"github.com/gaswhisperer/gaswhisperer/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	values []float64
	err    error
	counts []int
}

func (s *fakeSource) Recent(ctx context.Context, count int) (*types.RecentGasPoints, error) {
	s.counts = append(s.counts, count)

	if s.err != nil {
		return nil, s.err
	}

	window := make(types.GasWindow, len(s.values))
	for i, v := range s.values {
		window[i] = types.GasPoint{
			Timestamp: time.Date(2024, 5, 1, 12, 0, i, 0, time.UTC),
			GasGwei:   v,
		}
	}

	return &types.RecentGasPoints{Source: types.PointSourceMock, Recent: window.Tail(count)}, nil
}

func newTestRestHandler(src *fakeSource) http.Handler {
	optimizer := gasstation.NewOptimizer(gasstation.OptimizerConfig{
		WindowSize: 20,
		DropDelay:  3 * time.Minute,
	})
	advisor := advisor.NewAdvisor(advisor.Config{CacheSize: 8, CacheTTL: time.Minute}, nil)

	return NewRestHandler(handler.NewGasStationHandler(src, optimizer, advisor))
}

func serveTest(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if len(body) > 0 {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	return w
}

func decodeTestResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestRestGasTrend(t *testing.T) {
	testCases := []struct {
		values  []float64
		message string
	}{
		{[]float64{20, 20, 10, 10}, "Gas is expected to drop in ~3 minutes"},
		{[]float64{10, 10, 20, 20}, "Gas may rise in the next few minutes"},
		{[]float64{10, 10, 10, 10}, "Gas likely stable for the next few minutes"},
		{[]float64{10, 20, 30}, "Not enough data"},
		{nil, "Not enough data"},
	}

	for _, tc := range testCases {
		w := serveTest(newTestRestHandler(&fakeSource{values: tc.values}), http.MethodGet, "/gas-trend", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]any{"message": tc.message}, decodeTestResponse(t, w))
	}

	// source unavailable
	w := serveTest(newTestRestHandler(&fakeSource{err: errors.New("io error")}), http.MethodGet, "/gas-trend", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Not enough data", decodeTestResponse(t, w)["message"])
}

func TestRestFetchRecent(t *testing.T) {
	src := &fakeSource{values: []float64{1, 2, 3}}
	h := newTestRestHandler(src)

	w := serveTest(h, http.MethodGet, "/fetch-recent?count=2", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var points types.RecentGasPoints
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &points))
	assert.Equal(t, types.PointSourceMock, points.Source)
	assert.Equal(t, []float64{2, 3}, points.Recent.Values())
	assert.Equal(t, "2024-05-01T12:00:02Z", types.FormatUTC(points.Recent[1].Timestamp))

	// default count
	w = serveTest(h, http.MethodGet, "/fetch-recent", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.DefaultWindowSize, src.counts[len(src.counts)-1])

	for _, count := range []string{"abc", "-1", "1.5", "100000"} {
		w = serveTest(h, http.MethodGet, "/fetch-recent?count="+count, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, count)
		assert.NotEmpty(t, decodeTestResponse(t, w)["error"])
	}
}

func TestRestOptimize(t *testing.T) {
	h := newTestRestHandler(&fakeSource{values: []float64{10, 10, 11, 11, 12, 12}})

	w := serveTest(h, http.MethodPost, "/optimize", `{"tx":"swap 1 ETH","current_gas":12}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeTestResponse(t, w)
	assert.Equal(t, 11.0, resp["suggested_gas"])
	assert.Equal(t, false, resp["risk"])
	assert.Equal(t, 0.0, resp["wait_seconds"])
	assert.Equal(t, "Current gas above median (11.0 gwei). Suggest lowering toward median.", resp["reason"])
	assert.True(t, strings.HasSuffix(resp["optimal_time_iso"].(string), "Z"))

	for _, body := range []string{
		`{"tx":"swap","current_gas":0}`,
		`{"tx":"swap","current_gas":-5}`,
		`{"tx":"swap"}`,
		`{"tx":"swap","current_gas":"abc"}`,
		`{"current_gas":12}`,
		`not json`,
	} {
		w = serveTest(h, http.MethodPost, "/optimize", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.NotEmpty(t, decodeTestResponse(t, w)["error"], body)
	}

	// wrong method
	w = serveTest(h, http.MethodGet, "/optimize", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRestOptimizeFallingTrend(t *testing.T) {
	h := newTestRestHandler(&fakeSource{values: []float64{20, 20, 10, 10}})

	w := serveTest(h, http.MethodPost, "/optimize", `{"tx":"","current_gas":15}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result types.OptimizationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, int64(180), result.WaitSeconds)
	assert.True(t, result.OptimalTime.After(time.Now().Add(2*time.Minute)))
}

func TestRestAiPredict(t *testing.T) {
	src := &fakeSource{values: []float64{20, 20, 10, 10}}
	h := newTestRestHandler(src)

	for _, body := range []string{"", `{}`, `{"count":4}`, `{"api_key":""}`} {
		w := serveTest(h, http.MethodPost, "/ai-predict", body)
		assert.Equal(t, http.StatusOK, w.Code, body)
		assert.Equal(t, map[string]any{
			"message": "Gas is expected to drop in ~3 minutes (heuristic)",
			"source":  "heuristic",
		}, decodeTestResponse(t, w))
	}

	// count defaults to 20
	assert.Equal(t, []int{20, 20, 4, 20}, src.counts)

	w := serveTest(h, http.MethodPost, "/ai-predict", `{"count":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// no data
	w = serveTest(newTestRestHandler(&fakeSource{}), http.MethodPost, "/ai-predict", `{}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"message": "Not enough data for prediction"}, decodeTestResponse(t, w))
}

func TestRestExplain(t *testing.T) {
	h := newTestRestHandler(&fakeSource{})

	w := serveTest(h, http.MethodPost, "/explain", `{"tx":"Approve USDC"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{
		"explanation": "This transaction approves a contract to spend your tokens.",
	}, decodeTestResponse(t, w))

	w = serveTest(h, http.MethodPost, "/explain", `{"tx":""}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Generic transaction — could be a contract call or token transfer.", decodeTestResponse(t, w)["explanation"])

	for _, body := range []string{"", `{}`, `{"tx":null}`} {
		w = serveTest(h, http.MethodPost, "/explain", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.NotEmpty(t, decodeTestResponse(t, w)["error"], body)
	}
}

func TestRestHealthz(t *testing.T) {
	w := serveTest(newTestRestHandler(&fakeSource{}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeTestResponse(t, w)["status"])

	w = serveTest(newTestRestHandler(&fakeSource{}), http.MethodGet, "/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
