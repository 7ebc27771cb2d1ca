package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"

	cmdutil "github.com/gaswhisperer/gaswhisperer/cmd/util"
	"github.com/gaswhisperer/gaswhisperer/config"
	"github.com/gaswhisperer/gaswhisperer/rpc"
	"github.com/gaswhisperer/gaswhisperer/util/rate"
	rpcutil "github.com/gaswhisperer/gaswhisperer/util/rpc"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagVersion bool // print version and exit

	rootCmd = &cobra.Command{
		Use:   "gaswhisperer",
		Short: "Gas whisperer suggests economical gas price and predicts short-term gas trend",
		Run:   start,
	}
)

func init() {
	rootCmd.Flags().BoolVarP(&flagVersion, "version", "v", false, "If true, print version and exit")

	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(predictCmd)
}

func start(cmd *cobra.Command, args []string) {
	if flagVersion {
		config.DumpVersionInfo()
		return
	}

	gasHandler := cmdutil.MustNewGasStationHandlerFromViper()
	conf := rpc.MustNewConfigFromViper()
	limiter, rateConf := rate.MustNewIpLimiterFromViper()

	cmdutil.StartAndGracefulShutdown(func(ctx context.Context, wg *sync.WaitGroup) {
		if limiter != nil {
			go limiter.ScheduleGC(ctx, rateConf.GCInterval, rateConf.GCTimeout)
		}

		restServer := rpc.NewRestServer(&conf, gasHandler, limiter)
		go restServer.MustServeGraceful(ctx, wg, conf.Endpoint, rpcutil.ProtocolHttp)

		if len(conf.JsonRpc.Endpoint) == 0 && len(conf.JsonRpc.WsEndpoint) == 0 {
			return
		}

		rpcServer := rpc.MustNewJsonRpcServer(&conf, gasHandler, limiter)

		if endpoint := conf.JsonRpc.Endpoint; len(endpoint) > 0 {
			go rpcServer.MustServeGraceful(ctx, wg, endpoint, rpcutil.ProtocolHttp)
		}

		if endpoint := conf.JsonRpc.WsEndpoint; len(endpoint) > 0 {
			go rpcServer.MustServeGraceful(ctx, wg, endpoint, rpcutil.ProtocolWS)
		}

		logrus.WithField("exposedModules", conf.JsonRpc.ExposedModules).Info("JSON-RPC server enabled")
	})
}

// Execute is the command line entrypoint.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
