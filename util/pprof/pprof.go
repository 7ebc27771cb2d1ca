package pprof

import (
	"net"
	"net/http"
	"net/http/pprof"

	"github.com/Conflux-Chain/go-conflux-util/viper"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Enabled      bool
	HttpEndpoint string `default:":6060"`
}

// MustInit starts to serve runtime profiling data if enabled. This package should be
// imported after the initialization of viper and logrus.
func MustInit() {
	var config Config
	viper.MustUnmarshalKey("pprof", &config)
	if !config.Enabled {
		return
	}

	l, err := net.Listen("tcp", config.HttpEndpoint)
	if err != nil {
		logrus.WithError(err).
			WithField("endpoint", config.HttpEndpoint).
			Fatal("Failed to listen http endpoint for pprof")
	}

	go func() {
		logrus.WithField("endpoint", config.HttpEndpoint).
			Info("Start to collect runtime profiling data...")

		defer l.Close()
		http.Serve(l, newHandler())
	}()
}

// newHandler serves pprof handlers on a dedicated mux rather than the default one.
func newHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return mux
}
