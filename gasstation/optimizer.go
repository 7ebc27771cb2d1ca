package gasstation

import (
	"fmt"
	"math"
	"time"

	"github.com/Conflux-Chain/go-conflux-util/viper"
	"github.com/gaswhisperer/gaswhisperer/types"
	"github.com/sirupsen/logrus"
)

const (
	// max ratio to cut off from the current gas price in one step
	maxCutRatio = 0.9
	// min ratio of median to nudge up a very low current gas price
	minMedianRatio = 0.9

	reasonNoRecentData = "no recent data"
)

type OptimizerConfig struct {
	// Number of most recent gas samples to optimize against.
	WindowSize int `default:"20"`
	// Delay to wait for the gas price to drop if the trend is falling.
	DropDelay time.Duration `default:"3m"`
}

// Optimizer suggests an economical gas price and submission time from recent gas samples.
type Optimizer struct {
	config OptimizerConfig
}

func MustNewOptimizerFromViper() *Optimizer {
	var cfg OptimizerConfig
	viper.MustUnmarshalKey("gasStation", &cfg)

	logrus.WithField("config", cfg).Debug("Gas optimizer config loaded")

	return NewOptimizer(cfg)
}

func NewOptimizer(cfg OptimizerConfig) *Optimizer {
	return &Optimizer{config: cfg}
}

// WindowSize returns the number of most recent gas samples to optimize against.
func (o *Optimizer) WindowSize() int {
	if o.config.WindowSize <= 0 {
		return types.DefaultWindowSize
	}

	return o.config.WindowSize
}

// Optimize computes the suggested gas price, risk flag and optimal submission time
// for the current gas price against the gas window. It never fails, and degrades to
// the current gas price if no recent data available.
func (o *Optimizer) Optimize(currentGas float64, window types.GasWindow, now time.Time) *types.OptimizationResult {
	if len(window) == 0 {
		return &types.OptimizationResult{
			SuggestedGas: currentGas,
			OptimalTime:  now,
			Reason:       reasonNoRecentData,
		}
	}

	values := window.Values()
	median, p90 := Median(values), P90(values)

	var suggested float64
	var reason string

	if currentGas > median {
		// never below the median, and never cut more than 10% in one step
		suggested = math.Max(median, currentGas*maxCutRatio)
		reason = fmt.Sprintf("Current gas above median (%v gwei). Suggest lowering toward median.", types.FormatGwei(median))
	} else {
		// keep the current price, or nudge it up to 90% of median if far too low
		suggested = math.Max(currentGas, median*minMedianRatio)
		reason = fmt.Sprintf("Current gas at or below median (%v gwei).", types.FormatGwei(median))
	}

	var delay time.Duration
	if EstimateTrend(window) == types.GasTrendFalling {
		delay = o.config.DropDelay
	}

	return &types.OptimizationResult{
		SuggestedGas: types.RoundGwei(suggested),
		// price regime rarely required historically, rather than too low to confirm
		Risk:        currentGas > p90,
		OptimalTime: now.Add(delay),
		Reason:      reason,
		WaitSeconds: int64(max(delay, 0) / time.Second),
	}
}
