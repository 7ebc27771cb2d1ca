package handler

import (
	"context"
	"time"

	logutil "github.com/Conflux-Chain/go-conflux-util/log"
	"github.com/gaswhisperer/gaswhisperer/advisor"
	"github.com/gaswhisperer/gaswhisperer/explain"
	"github.com/gaswhisperer/gaswhisperer/gasstation"
	"github.com/gaswhisperer/gaswhisperer/source"
	"github.com/gaswhisperer/gaswhisperer/types"
	"github.com/sirupsen/logrus"
)

// GasStationHandler serves gas station requests for both REST and JSON-RPC APIs.
type GasStationHandler struct {
	source    source.Source
	optimizer *gasstation.Optimizer
	advisor   *advisor.Advisor

	etLogger *logutil.ErrorTolerantLogger

	// custom `time.Now` function, which could be used for testing
	timeNowFunc func() time.Time
}

func NewGasStationHandler(
	source source.Source, optimizer *gasstation.Optimizer, advisor *advisor.Advisor,
) *GasStationHandler {
	return &GasStationHandler{
		source:      source,
		optimizer:   optimizer,
		advisor:     advisor,
		etLogger:    logutil.NewErrorTolerantLogger(logutil.DefaultETConfig),
		timeNowFunc: time.Now,
	}
}

// recent fetches the most recent gas points, or an empty window if unavailable.
func (h *GasStationHandler) recent(ctx context.Context, count int) *types.RecentGasPoints {
	points, err := h.source.Recent(ctx, count)
	h.etLogger.Log(
		logrus.WithField("count", count), err, "Failed to fetch recent gas points",
	)

	if err != nil || points == nil {
		return &types.RecentGasPoints{Source: types.PointSourceMock, Recent: types.GasWindow{}}
	}

	if points.Recent == nil {
		points.Recent = types.GasWindow{}
	}

	return points
}

// Trend summarizes the short-term gas trend of the recent window.
func (h *GasStationHandler) Trend(ctx context.Context) *types.TrendReport {
	window := h.recent(ctx, h.optimizer.WindowSize()).Recent
	trend := gasstation.EstimateTrend(window)

	return &types.TrendReport{Message: gasstation.TrendMessage(trend)}
}

// Recent returns the most recent `count` gas points with the source they came from.
func (h *GasStationHandler) Recent(ctx context.Context, count int) (*types.RecentGasPoints, error) {
	if err := types.ValidateCount(count); err != nil {
		return nil, err
	}

	return h.recent(ctx, count), nil
}

// Optimize suggests an economical gas price and submission time for the transaction.
func (h *GasStationHandler) Optimize(
	ctx context.Context, req *types.OptimizationRequest,
) (*types.OptimizationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	window := h.recent(ctx, h.optimizer.WindowSize()).Recent
	return h.optimizer.Optimize(req.CurrentGas, window, h.timeNowFunc()), nil
}

// Predict predicts the short-term gas trend in one line, enriched by LLM if available.
func (h *GasStationHandler) Predict(ctx context.Context, req *types.PredictionRequest) (*types.Prediction, error) {
	if err := types.ValidateCount(req.Count); err != nil {
		return nil, err
	}

	window := h.recent(ctx, req.Count).Recent
	return h.advisor.Predict(ctx, window, req.ApiKey), nil
}

// Explain describes the transaction in plain words.
func (h *GasStationHandler) Explain(req *types.ExplainRequest) *types.Explanation {
	return &types.Explanation{Explanation: explain.Explain(req.Tx)}
}
