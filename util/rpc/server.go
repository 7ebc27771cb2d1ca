package rpc

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gaswhisperer/gaswhisperer/util/rpc/handlers"
	"github.com/openweb3/go-rpc-provider"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Protocol string

const (
	ProtocolHttp = "HTTP"
	ProtocolWS   = "WS"
)

var (
	// DefaultShutdownTimeout is default timeout to shutdown RPC server.
	DefaultShutdownTimeout = 3 * time.Second

	// defaultWsPingInterval the default websocket ping/pong heartbeating interval.
	defaultWsPingInterval = 10 * time.Second
)

// ServerOption is the HTTP level option of server.
type ServerOption struct {
	// Allowed CORS origins, CORS disabled if empty
	Cors []string
	// Allowed virtual hosts
	VHosts []string
	// HTTP middlewares executed in order
	Middlewares []handlers.Middleware
}

// Server serves REST or JSON RPC services.
type Server struct {
	name    string
	servers map[Protocol]*http.Server
}

// NewHttpServer creates an instance of Server with specified HTTP handler, e.g. REST APIs.
func NewHttpServer(name string, handler http.Handler, option ServerOption) *Server {
	httpServer := http.Server{
		Handler: handlers.Chain(
			newHTTPHandlerStack(handler, option.Cors, option.VHosts), option.Middlewares...,
		),
	}

	return &Server{
		name:    name,
		servers: map[Protocol]*http.Server{ProtocolHttp: &httpServer},
	}
}

// MustNewServer creates an instance of Server with specified JSON RPC services.
func MustNewServer(name string, rpcs map[string]any, option ServerOption) *Server {
	handler := rpc.NewServer()
	servedApis := make([]string, 0, len(rpcs))

	for namespace, impl := range rpcs {
		if err := handler.RegisterName(namespace, impl); err != nil {
			logrus.WithError(err).WithField("namespace", namespace).Fatal("Failed to register rpc service")
		}
		servedApis = append(servedApis, namespace)
	}

	logrus.WithFields(logrus.Fields{
		"APIs": servedApis,
		"name": name,
	}).Info("RPC server APIs registered")

	server := NewHttpServer(name, handler, option)

	viper.SetDefault("rpc.wsPingInterval", defaultWsPingInterval)
	wsServer := http.Server{
		Handler: handlers.Chain(handler.WebsocketHandler(option.Cors, rpc.WebsocketOption{
			WsPingInterval: viper.GetDuration("rpc.wsPingInterval"),
		}), option.Middlewares...),
	}
	server.servers[ProtocolWS] = &wsServer

	return server
}

// MustServe serves RPC server in blocking way or panics if failed.
func (s *Server) MustServe(endpoint string, protocol Protocol) {
	logger := logrus.WithFields(logrus.Fields{
		"name":     s.name,
		"endpoint": endpoint,
		"protocol": protocol,
	})

	server, ok := s.servers[protocol]
	if !ok {
		logger.Fatal("RPC protocol unsupported")
	}

	listener, err := net.Listen("tcp", endpoint)
	if err != nil {
		logger.WithError(err).Fatal("Failed to listen to endpoint")
	}

	logger.Info("Server started")

	if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Error("Server stopped unexpectedly")
	}
}

// MustServeGraceful serves RPC server in a goroutine until graceful shutdown.
func (s *Server) MustServeGraceful(
	ctx context.Context, wg *sync.WaitGroup, endpoint string, protocol Protocol,
) {
	wg.Add(1)
	defer wg.Done()

	go s.MustServe(endpoint, protocol)

	<-ctx.Done()

	s.shutdown(protocol)
}

func (s *Server) shutdown(protocol Protocol) {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()

	logger := logrus.WithFields(logrus.Fields{
		"name":     s.name,
		"protocol": protocol,
	})

	if err := s.servers[protocol].Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Failed to shutdown server")
	} else {
		logger.Info("Succeed to shutdown server")
	}
}

func (s *Server) String() string { return s.name }
