package metrics

import (
	"github.com/ethereum/go-ethereum/metrics"
)

var Registry Metrics

type Metrics struct {
	HTTP    HttpMetrics
	RPC     RpcMetrics
	Source  SourceMetrics
	Advisor AdvisorMetrics
}

// HTTP metrics
type HttpMetrics struct{}

func (*HttpMetrics) Duration(route string, status int) metrics.Timer {
	if status >= 400 {
		return GetOrRegisterTimer("gaswhisperer/http/duration/%v/failure", route)
	}

	return GetOrRegisterTimer("gaswhisperer/http/duration/%v/success", route)
}

func (*HttpMetrics) RateLimited() metrics.Meter {
	return GetOrRegisterMeter("gaswhisperer/http/ratelimited")
}

// JSON-RPC metrics
type RpcMetrics struct{}

func (*RpcMetrics) Duration(method string, err error) metrics.Timer {
	if err != nil {
		return GetOrRegisterTimer("gaswhisperer/rpc/duration/%v/failure", method)
	}

	return GetOrRegisterTimer("gaswhisperer/rpc/duration/%v/success", method)
}

func (*RpcMetrics) BatchLatency() metrics.Timer {
	return GetOrRegisterTimer("gaswhisperer/rpc/batch/latency")
}

func (*RpcMetrics) RateLimited(method string) metrics.Meter {
	return GetOrRegisterMeter("gaswhisperer/rpc/ratelimited/%v", method)
}

// Gas point source metrics
type SourceMetrics struct{}

func (*SourceMetrics) RpcCall(method string, err error) metrics.Timer {
	if err != nil {
		return GetOrRegisterTimer("gaswhisperer/source/rpc/%v/error", method)
	}

	return GetOrRegisterTimer("gaswhisperer/source/rpc/%v/success", method)
}

func (*SourceMetrics) RpcIoErrors(fullnode string) metrics.Counter {
	return GetOrRegisterCounter("gaswhisperer/source/rpc/ioerr/%v", fullnode)
}

func (*SourceMetrics) Fallback() metrics.Meter {
	return GetOrRegisterMeter("gaswhisperer/source/fallback")
}

func (*SourceMetrics) CacheHit(hit bool) metrics.Meter {
	if hit {
		return GetOrRegisterMeter("gaswhisperer/source/cache/hit")
	}

	return GetOrRegisterMeter("gaswhisperer/source/cache/miss")
}

// Advisory enrichment metrics
type AdvisorMetrics struct{}

func (*AdvisorMetrics) Prediction(source string) metrics.Meter {
	return GetOrRegisterMeter("gaswhisperer/advisor/prediction/%v", source)
}

func (*AdvisorMetrics) CompletionDuration(err error) metrics.Timer {
	if err != nil {
		return GetOrRegisterTimer("gaswhisperer/advisor/completion/error")
	}

	return GetOrRegisterTimer("gaswhisperer/advisor/completion/success")
}
