package rpc

import (
	"time"
)

// ClientConfig is the tuning configuration of blockchain RPC client.
type ClientConfig struct {
	Retry           int           `default:"0"`
	RetryInterval   time.Duration `default:"1s"`
	RequestTimeout  time.Duration `default:"3s"`
	MaxConnsPerHost int           `default:"64"`
}

type ClientOptioner interface {
	SetRetryCount(retry int)
	SetRetryInterval(retryInterval time.Duration)
	SetRequestTimeout(reqTimeout time.Duration)
	SetMaxConnsPerHost(maxConns int)
	SetHookMetrics(hook bool)
}

type baseClientOption struct {
	hookMetrics bool
}

func (o *baseClientOption) SetHookMetrics(hook bool) {
	o.hookMetrics = hook
}

type ClientOption func(opt ClientOptioner)

func WithClientHookMetrics(hook bool) ClientOption {
	return func(opt ClientOptioner) {
		opt.SetHookMetrics(hook)
	}
}

// WithClientConfig applies all settings of the client config.
func WithClientConfig(cfg ClientConfig) ClientOption {
	return func(opt ClientOptioner) {
		opt.SetRetryCount(cfg.Retry)
		opt.SetRetryInterval(cfg.RetryInterval)
		opt.SetRequestTimeout(cfg.RequestTimeout)
		opt.SetMaxConnsPerHost(cfg.MaxConnsPerHost)
	}
}
