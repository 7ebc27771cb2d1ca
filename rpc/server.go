package rpc

import (
	"github.com/gaswhisperer/gaswhisperer/rpc/handler"
	"github.com/gaswhisperer/gaswhisperer/util/rate"
	rpcutil "github.com/gaswhisperer/gaswhisperer/util/rpc"
	"github.com/sirupsen/logrus"
)

// NewRestServer creates the REST API server.
func NewRestServer(
	conf *Config, gasHandler *handler.GasStationHandler, limiter *rate.IpLimiter,
) *rpcutil.Server {
	return rpcutil.NewHttpServer("gaswhisperer_rest", NewRestHandler(gasHandler), rpcutil.ServerOption{
		Cors:        conf.Cors,
		VHosts:      conf.VHosts,
		Middlewares: restMiddlewares(limiter),
	})
}

// MustNewJsonRpcServer creates the JSON-RPC server of gas station APIs.
func MustNewJsonRpcServer(
	conf *Config, gasHandler *handler.GasStationHandler, limiter *rate.IpLimiter,
) *rpcutil.Server {
	exposedApis, err := filterExposedApis(gasStationApis(gasHandler), conf.JsonRpc.ExposedModules)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to new JSON-RPC server with bad exposed modules")
	}

	hookRpcMiddlewares(limiter)

	return rpcutil.MustNewServer("gaswhisperer_jsonrpc", exposedApis, rpcutil.ServerOption{
		Cors:        conf.Cors,
		VHosts:      conf.VHosts,
		Middlewares: jsonRpcMiddlewares(),
	})
}
