package rpc

import (
	"context"

	"github.com/gaswhisperer/gaswhisperer/rpc/handler"
	"github.com/gaswhisperer/gaswhisperer/types"
	"github.com/mcuadros/go-defaults"
)

// gasAPI provides gas station JSON-RPC APIs under `gas` namespace.
type gasAPI struct {
	handler *handler.GasStationHandler
}

func newGasAPI(handler *handler.GasStationHandler) *gasAPI {
	return &gasAPI{handler: handler}
}

// Trend summarizes the short-term gas trend.
func (api *gasAPI) Trend(ctx context.Context) (*types.TrendReport, error) {
	return api.handler.Trend(ctx), nil
}

// RecentPoints returns the most recent gas points, 20 by default.
func (api *gasAPI) RecentPoints(ctx context.Context, count *int) (*types.RecentGasPoints, error) {
	n := types.DefaultWindowSize
	if count != nil {
		n = *count
	}

	return api.handler.Recent(ctx, n)
}

// Optimize suggests an economical gas price and submission time for the transaction.
func (api *gasAPI) Optimize(ctx context.Context, req types.OptimizationRequest) (*types.OptimizationResult, error) {
	return api.handler.Optimize(ctx, &req)
}

// Predict predicts the short-term gas trend in one line.
func (api *gasAPI) Predict(ctx context.Context, req *types.PredictionRequest) (*types.Prediction, error) {
	if req == nil {
		req = &types.PredictionRequest{}
		defaults.SetDefaults(req)
	}

	return api.handler.Predict(ctx, req)
}

// Explain describes the transaction in plain words.
func (api *gasAPI) Explain(ctx context.Context, tx string) (*types.Explanation, error) {
	return api.handler.Explain(&types.ExplainRequest{Tx: tx}), nil
}
