package gasstation

import (
	"math"
	"slices"

	"github.com/montanaflynn/stats"
)

const (
	// num of quantile cut points for large sample percentile interpolation
	numQuantiles = 100
	// min num of samples to interpolate percentiles among quantile cut points,
	// otherwise percentiles are approximated by sorted index.
	minInterpolationSamples = numQuantiles
)

// Median returns the median of the values, which is the mean of the two middle
// values for an even count. Returns 0 if no values provided.
func Median(values []float64) float64 {
	median, err := stats.Median(values)
	if err != nil { // empty input
		return 0
	}

	return median
}

// Mean returns the arithmetic mean of the values, or 0 if no values provided.
func Mean(values []float64) float64 {
	mean, err := stats.Mean(values)
	if err != nil { // empty input
		return 0
	}

	return mean
}

// P90 returns the 90th percentile of the values.
func P90(values []float64) float64 {
	return Percentile(values, 90)
}

// Percentile returns the p-th (1 <= p <= 99) percentile of the values.
//
// For at least 100 samples, it's the p-th of 99 quantile cut points linearly
// interpolated in the exclusive way (sample positions p*(n+1)/100). For fewer
// samples, it's approximated by the sorted value at index `max(0, floor(n*p/100)-1)`.
func Percentile(values []float64, p int) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	if len(sorted) < minInterpolationSamples {
		index := int(math.Floor(float64(len(sorted))*float64(p)/100)) - 1
		return sorted[max(0, index)]
	}

	return interpolateQuantile(sorted, p)
}

// interpolateQuantile computes the i-th of (numQuantiles - 1) cut points over the
// ascending sorted samples with exact integer position math.
func interpolateQuantile(sorted []float64, i int) float64 {
	n, m := numQuantiles, len(sorted)+1

	j := i * m / n
	j = min(max(j, 1), len(sorted)-1)

	delta := i*m - j*n
	return (sorted[j-1]*float64(n-delta) + sorted[j]*float64(delta)) / float64(n)
}
