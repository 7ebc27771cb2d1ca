package rpc

import (
	"context"
	"testing"
	"time"

	"github.com/gaswhisperer/gaswhisperer/advisor"
	"github.com/gaswhisperer/gaswhisperer/gasstation"
	"github.com/gaswhisperer/gaswhisperer/rpc/handler"
	"github.com/gaswhisperer/gaswhisperer/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGasAPI(src *fakeSource) *gasAPI {
	optimizer := gasstation.NewOptimizer(gasstation.OptimizerConfig{DropDelay: 3 * time.Minute})
	advisor := advisor.NewAdvisor(advisor.Config{CacheSize: 8, CacheTTL: time.Minute}, nil)

	return newGasAPI(handler.NewGasStationHandler(src, optimizer, advisor))
}

func TestFilterExposedApis(t *testing.T) {
	apis := gasStationApis(nil)

	// public only by default
	served, err := filterExposedApis(apis, nil)
	require.NoError(t, err)
	assert.Len(t, served, 1)
	assert.Contains(t, served, namespaceGas)

	served, err = filterExposedApis(apis, []string{namespaceGas, namespaceMetrics})
	require.NoError(t, err)
	assert.Len(t, served, 2)

	_, err = filterExposedApis(apis, []string{"eth"})
	assert.Error(t, err)
}

func TestGasAPI(t *testing.T) {
	src := &fakeSource{values: []float64{20, 20, 10, 10}}
	api := newTestGasAPI(src)
	ctx := context.Background()

	trend, err := api.Trend(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Gas is expected to drop in ~3 minutes", trend.Message)

	points, err := api.RecentPoints(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, points.Recent, 4)
	assert.Equal(t, types.DefaultWindowSize, src.counts[len(src.counts)-1])

	count := 2
	points, err = api.RecentPoints(ctx, &count)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 10}, points.Recent.Values())

	result, err := api.Optimize(ctx, types.OptimizationRequest{CurrentGas: 30})
	require.NoError(t, err)
	assert.True(t, result.Risk)
	assert.Equal(t, int64(180), result.WaitSeconds)

	_, err = api.Optimize(ctx, types.OptimizationRequest{CurrentGas: 0})
	assert.Equal(t, types.ErrInvalidCurrentGas, err)

	prediction, err := api.Predict(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, types.PredictionSourceHeuristic, prediction.Source)
	assert.Equal(t, types.DefaultWindowSize, src.counts[len(src.counts)-1])

	explanation, err := api.Explain(ctx, "transfer 1 DAI")
	require.NoError(t, err)
	assert.Equal(t, "This transfers tokens from one address to another.", explanation.Explanation)
}
