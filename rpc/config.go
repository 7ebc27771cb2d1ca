package rpc

import (
	"github.com/Conflux-Chain/go-conflux-util/viper"
)

type JsonRpcConfig struct {
	// HTTP endpoint of JSON-RPC server, disabled if empty
	Endpoint string
	// Websocket endpoint of JSON-RPC server, disabled if empty
	WsEndpoint string
	// API modules to expose, all public modules exposed if empty
	ExposedModules []string
}

type Config struct {
	// HTTP endpoint of REST APIs
	Endpoint string `default:":8000"`
	// Allowed CORS origins, all origins allowed if empty
	Cors []string
	// Allowed virtual hosts, all hosts allowed if empty
	VHosts []string

	JsonRpc JsonRpcConfig
}

func MustNewConfigFromViper() (conf Config) {
	viper.MustUnmarshalKey("rpc", &conf)

	if len(conf.Cors) == 0 {
		conf.Cors = []string{"*"}
	}

	return conf
}
