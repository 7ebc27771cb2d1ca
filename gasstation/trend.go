package gasstation

import "github.com/gaswhisperer/gaswhisperer/types"

// minTrendSamples is the min num of samples to make any directional claim.
const minTrendSamples = 4

// EstimateTrend classifies the short-term gas price direction by comparing the mean
// of the first half of the window against the mean of the second half.
func EstimateTrend(window types.GasWindow) types.GasTrend {
	if len(window) < minTrendSamples {
		return types.GasTrendInsufficientData
	}

	values := window.Values()
	mid := len(values) / 2

	firstAvg, lastAvg := Mean(values[:mid]), Mean(values[mid:])

	switch {
	case lastAvg < firstAvg:
		return types.GasTrendFalling
	case lastAvg > firstAvg:
		return types.GasTrendRising
	default:
		return types.GasTrendStable
	}
}

// TrendMessage describes the gas trend in prose.
func TrendMessage(trend types.GasTrend) string {
	switch trend {
	case types.GasTrendFalling:
		return "Gas is expected to drop in ~3 minutes"
	case types.GasTrendRising:
		return "Gas may rise in the next few minutes"
	case types.GasTrendStable:
		return "Gas likely stable for the next few minutes"
	default:
		return "Not enough data"
	}
}
