package advisor

import (
	"context"
	"encoding/binary"
	"math"
	"strings"
	"time"

	"github.com/Conflux-Chain/go-conflux-util/viper"
	"github.com/cespare/xxhash"
	"github.com/gaswhisperer/gaswhisperer/gasstation"
	"github.com/gaswhisperer/gaswhisperer/types"
	"github.com/gaswhisperer/gaswhisperer/util"
	"github.com/gaswhisperer/gaswhisperer/util/metrics"
	"github.com/sirupsen/logrus"
)

const msgNotEnoughData = "Not enough data for prediction"

type Config struct {
	// Default API key, which could be overridden per request
	ApiKey    string
	BaseUrl   string        `default:"https://api.openai.com/v1"`
	Model     string        `default:"gpt-4o-mini"`
	Timeout   time.Duration `default:"10s"`
	CacheSize int           `default:"128"`
	CacheTTL  time.Duration `default:"30s"`
}

// Advisor predicts short-term gas trend with LLM if possible, and falls back to
// a deterministic heuristic otherwise.
type Advisor struct {
	conf      Config
	completer Completer

	// (model, api key, window) fingerprint => completion
	cache *util.ExpirableLruCache[uint64, string]
}

func MustNewAdvisorFromViper() *Advisor {
	var conf Config
	viper.MustUnmarshalKey("advisor", &conf)

	completer := NewOpenAICompleter(conf.BaseUrl, conf.Model, conf.Timeout)
	return NewAdvisor(conf, completer)
}

func NewAdvisor(conf Config, completer Completer) *Advisor {
	return &Advisor{
		conf:      conf,
		completer: completer,
		cache:     util.NewExpirableLruCache[uint64, string](conf.CacheSize, conf.CacheTTL),
	}
}

// Predict returns a one-line gas trend prediction for the window. The request api key
// takes precedence over the configured one. It never fails.
func (a *Advisor) Predict(ctx context.Context, window types.GasWindow, apiKey string) *types.Prediction {
	if len(window) == 0 {
		return &types.Prediction{Message: msgNotEnoughData}
	}

	if len(apiKey) == 0 {
		apiKey = a.conf.ApiKey
	}

	if len(apiKey) > 0 && a.completer != nil {
		text, err := a.complete(ctx, window.Values(), apiKey)
		if err == nil {
			metrics.Registry.Advisor.Prediction(types.PredictionSourceOpenAI).Mark(1)
			return &types.Prediction{Message: text, Source: types.PredictionSourceOpenAI}
		}

		logrus.WithError(err).Warn("Failed to predict gas trend with LLM, fallback to heuristic")
	}

	metrics.Registry.Advisor.Prediction(types.PredictionSourceHeuristic).Mark(1)

	return &types.Prediction{
		Message: HeuristicMessage(gasstation.EstimateTrend(window)),
		Source:  types.PredictionSourceHeuristic,
	}
}

func (a *Advisor) complete(ctx context.Context, values []float64, apiKey string) (string, error) {
	key := a.fingerprint(values, apiKey)
	if text, ok := a.cache.Get(key); ok {
		return text, nil
	}

	start := time.Now()
	text, err := a.completer.Complete(ctx, apiKey, buildPrompt(values))
	metrics.Registry.Advisor.CompletionDuration(err).UpdateSince(start)

	if err != nil {
		return "", err
	}

	a.cache.Add(key, text)

	return text, nil
}

// fingerprint hashes the model, api key and window values as LLM cache key.
func (a *Advisor) fingerprint(values []float64, apiKey string) uint64 {
	buf := make([]byte, 0, len(a.conf.Model)+8*(len(values)+1))
	buf = append(buf, a.conf.Model...)
	buf = binary.BigEndian.AppendUint64(buf, xxhash.Sum64String(apiKey))

	for _, v := range values {
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(v))
	}

	return xxhash.Sum64(buf)
}

func buildPrompt(values []float64) string {
	var sb strings.Builder

	sb.WriteString("Given recent block gas values in gwei: [")
	for i, v := range values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(types.FormatGwei(v))
	}
	sb.WriteString("]. Provide a one-line short-term (next 5 minutes) prediction and confidence percentage.")

	return sb.String()
}

// HeuristicMessage returns the heuristic prediction message of gas trend.
func HeuristicMessage(trend types.GasTrend) string {
	switch trend {
	case types.GasTrendFalling:
		return "Gas is expected to drop in ~3 minutes (heuristic)"
	case types.GasTrendRising:
		return "Gas may rise in the next few minutes (heuristic)"
	default:
		return "Gas likely stable for the next few minutes (heuristic)"
	}
}
