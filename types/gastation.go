package types

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mcuadros/go-defaults"
	"github.com/pkg/errors"
)

const (
	// DefaultWindowSize is the number of most recent gas samples used by default.
	DefaultWindowSize = 20
	// MaxWindowSize is the max number of gas samples allowed to request at a time.
	MaxWindowSize = 1000
)

// GasTrend represents the short-term direction of gas prices.
type GasTrend string

const (
	GasTrendFalling          GasTrend = "falling"
	GasTrendRising           GasTrend = "rising"
	GasTrendStable           GasTrend = "stable"
	GasTrendInsufficientData GasTrend = "insufficient_data"
)

// Source tags of the gas point window.
const (
	PointSourceRpc  = "rpc"
	PointSourceMock = "mock"
)

// Source tags of the gas trend prediction.
const (
	PredictionSourceOpenAI    = "openai"
	PredictionSourceHeuristic = "heuristic"
)

// GasPoint is a single observed gas price sample.
type GasPoint struct {
	Timestamp time.Time `json:"timestamp"`
	GasGwei   float64   `json:"gas_gwei"`
}

// MarshalJSON renders the timestamp as an ISO-8601 UTC instant, or omits it if unknown.
func (p GasPoint) MarshalJSON() ([]byte, error) {
	var obj struct {
		Timestamp string  `json:"timestamp,omitempty"`
		GasGwei   float64 `json:"gas_gwei"`
	}

	obj.GasGwei = p.GasGwei
	if !p.Timestamp.IsZero() {
		obj.Timestamp = FormatUTC(p.Timestamp)
	}

	return json.Marshal(obj)
}

// UnmarshalJSON accepts points without timestamp, e.g. hand written snapshots.
func (p *GasPoint) UnmarshalJSON(data []byte) error {
	var obj struct {
		Timestamp string  `json:"timestamp"`
		GasGwei   float64 `json:"gas_gwei"`
	}

	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	var ts time.Time
	if len(obj.Timestamp) > 0 {
		var err error
		if ts, err = time.Parse(time.RFC3339Nano, obj.Timestamp); err != nil {
			return errors.WithMessagef(err, "invalid gas point timestamp %v", obj.Timestamp)
		}
	}

	*p = GasPoint{Timestamp: ts.UTC(), GasGwei: obj.GasGwei}
	return nil
}

// GasWindow is a chronologically ordered (oldest first) sequence of gas points.
type GasWindow []GasPoint

// Values returns gas prices (in gwei) of the window in order.
func (w GasWindow) Values() []float64 {
	vals := make([]float64, len(w))
	for i := range w {
		vals[i] = w[i].GasGwei
	}

	return vals
}

// Tail returns the most recent `count` points, or the whole window if count is
// non-positive or exceeds the window size.
func (w GasWindow) Tail(count int) GasWindow {
	if count <= 0 || count >= len(w) {
		return w
	}

	return w[len(w)-count:]
}

// RecentGasPoints is a gas point window tagged with where it came from.
type RecentGasPoints struct {
	Source string    `json:"source"`
	Recent GasWindow `json:"recent"`
}

var (
	ErrInvalidCurrentGas = errors.New("current_gas must be a positive number")
	ErrMissingTx         = errors.New("tx is required")
	ErrInvalidCount      = errors.Errorf("count must be an integer between 0 and %v", MaxWindowSize)
)

// ValidateCount checks the number of gas samples requested.
func ValidateCount(count int) error {
	if count < 0 || count > MaxWindowSize {
		return ErrInvalidCount
	}

	return nil
}

// TrendReport summarizes the gas trend in prose.
type TrendReport struct {
	Message string `json:"message"`
}

// OptimizationRequest asks for a gas price suggestion for a transaction.
type OptimizationRequest struct {
	// Opaque transaction description, not parsed for optimization.
	Tx string `json:"tx"`
	// Proposed gas price in gwei.
	CurrentGas float64 `json:"current_gas"`
}

// UnmarshalJSON rejects request without `tx` field, while empty `tx` is allowed.
func (req *OptimizationRequest) UnmarshalJSON(data []byte) error {
	var obj struct {
		Tx         *string `json:"tx"`
		CurrentGas float64 `json:"current_gas"`
	}

	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	if obj.Tx == nil {
		return ErrMissingTx
	}

	*req = OptimizationRequest{Tx: *obj.Tx, CurrentGas: obj.CurrentGas}
	return nil
}

// Validate checks the request before it reaches the optimizer.
func (req *OptimizationRequest) Validate() error {
	if math.IsNaN(req.CurrentGas) || math.IsInf(req.CurrentGas, 0) || req.CurrentGas <= 0 {
		return ErrInvalidCurrentGas
	}

	return nil
}

// OptimizationResult is the gas price suggestion for a single request.
type OptimizationResult struct {
	// Suggested gas price in gwei, rounded to 2 decimals.
	SuggestedGas float64
	// Whether the current gas price exceeds the 90th percentile of recent samples.
	Risk bool
	// Optimal time to submit the transaction.
	OptimalTime time.Time
	// Human readable reason of the suggestion.
	Reason string
	// Seconds to wait until the optimal time, 0 means send now.
	WaitSeconds int64
}

type optimizationResultJSON struct {
	SuggestedGas   float64 `json:"suggested_gas"`
	Risk           bool    `json:"risk"`
	OptimalTimeIso string  `json:"optimal_time_iso"`
	Reason         string  `json:"reason"`
	WaitSeconds    int64   `json:"wait_seconds"`
}

func (r OptimizationResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(optimizationResultJSON{
		SuggestedGas:   r.SuggestedGas,
		Risk:           r.Risk,
		OptimalTimeIso: FormatUTC(r.OptimalTime),
		Reason:         r.Reason,
		WaitSeconds:    r.WaitSeconds,
	})
}

func (r *OptimizationResult) UnmarshalJSON(data []byte) error {
	var obj optimizationResultJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	optimalTime, err := time.Parse(time.RFC3339Nano, obj.OptimalTimeIso)
	if err != nil {
		return errors.WithMessage(err, "invalid optimal_time_iso")
	}

	*r = OptimizationResult{
		SuggestedGas: obj.SuggestedGas,
		Risk:         obj.Risk,
		OptimalTime:  optimalTime,
		Reason:       obj.Reason,
		WaitSeconds:  obj.WaitSeconds,
	}

	return nil
}

// PredictionRequest asks for a short-term gas price prediction.
type PredictionRequest struct {
	Count  int    `json:"count" default:"20"`
	ApiKey string `json:"api_key,omitempty"`
}

// UnmarshalJSON applies default values for fields absent in JSON.
func (req *PredictionRequest) UnmarshalJSON(data []byte) error {
	type plain PredictionRequest

	var obj plain
	defaults.SetDefaults(&obj)

	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	*req = PredictionRequest(obj)
	return nil
}

// Prediction is a one-line gas trend prediction.
type Prediction struct {
	Message string `json:"message"`
	Source  string `json:"source,omitempty"`
}

// ExplainRequest asks for a plain words explanation of a transaction.
type ExplainRequest struct {
	Tx string `json:"tx"`
}

// UnmarshalJSON rejects request without `tx` field, while empty `tx` is allowed.
func (req *ExplainRequest) UnmarshalJSON(data []byte) error {
	var obj struct {
		Tx *string `json:"tx"`
	}

	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	if obj.Tx == nil {
		return ErrMissingTx
	}

	req.Tx = *obj.Tx
	return nil
}

type Explanation struct {
	Explanation string `json:"explanation"`
}

// RoundGwei rounds the gas price to 2 decimals, with ties to even.
func RoundGwei(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

// FormatGwei formats the gas price in the shortest form with at least one decimal,
// e.g. 12.0, 12.35.
func FormatGwei(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}

	return s
}

// FormatUTC formats the time as an RFC 3339 UTC instant with `Z` suffix.
func FormatUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
