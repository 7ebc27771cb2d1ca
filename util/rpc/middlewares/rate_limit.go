package middlewares

import (
	"context"
	"errors"

	"github.com/gaswhisperer/gaswhisperer/util/metrics"
	"github.com/gaswhisperer/gaswhisperer/util/rate"
	"github.com/gaswhisperer/gaswhisperer/util/rpc/handlers"
	"github.com/openweb3/go-rpc-provider"
)

var errRateLimit = errors.New("too many requests")

// RateLimit limits RPC requests per remote IP, which is injected into context by the
// `handlers.RealIP` HTTP middleware. Requests without IP are not limited.
func RateLimit(limiter *rate.IpLimiter) func(next rpc.HandleCallMsgFunc) rpc.HandleCallMsgFunc {
	return func(next rpc.HandleCallMsgFunc) rpc.HandleCallMsgFunc {
		return func(ctx context.Context, msg *rpc.JsonRpcMessage) *rpc.JsonRpcMessage {
			ip, ok := handlers.GetIPAddressFromContext(ctx)
			if !ok || limiter == nil || limiter.Allow(ip, 1) {
				return next(ctx, msg)
			}

			metrics.Registry.RPC.RateLimited(msg.Method).Mark(1)

			return msg.ErrorResponse(errRateLimit)
		}
	}
}
