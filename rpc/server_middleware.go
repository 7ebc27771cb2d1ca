package rpc

import (
	"sync"

	"github.com/gaswhisperer/gaswhisperer/util/rate"
	"github.com/gaswhisperer/gaswhisperer/util/rpc/handlers"
	"github.com/gaswhisperer/gaswhisperer/util/rpc/middlewares"
	"github.com/openweb3/go-rpc-provider"
)

var hookRpcMiddlewaresOnce sync.Once

// go-rpc-provider only supports static middlewares for RPC server.
func hookRpcMiddlewares(limiter *rate.IpLimiter) {
	hookRpcMiddlewaresOnce.Do(func() {
		// middlewares executed in order

		// panic recovery
		rpc.HookHandleCallMsg(middlewares.Recover)

		// rate limit
		rpc.HookHandleCallMsg(middlewares.RateLimit(limiter))

		// metrics
		rpc.HookHandleBatch(middlewares.MetricsBatch)
		rpc.HookHandleCallMsg(middlewares.Metrics)

		// log
		rpc.HookHandleBatch(middlewares.LogBatch)
		rpc.HookHandleCallMsg(middlewares.Log)

		// invalid json rpc request without `ID`
		rpc.HookHandleCallMsg(rpc.PreventMessagesWithouID)
	})
}

// restMiddlewares returns HTTP middlewares of REST server in order.
func restMiddlewares(limiter *rate.IpLimiter) []handlers.Middleware {
	return []handlers.Middleware{
		handlers.RequestID,
		handlers.RealIP,
		handlers.Recover,
		handlers.Log,
		handlers.RateLimit(limiter),
	}
}

// jsonRpcMiddlewares returns HTTP middlewares of JSON-RPC server, which inject values into
// context for static RPC call middlewares, e.g. rate limit.
func jsonRpcMiddlewares() []handlers.Middleware {
	return []handlers.Middleware{
		handlers.RequestID,
		handlers.RealIP,
	}
}
