package rpc

import (
	"time"

	providers "github.com/openweb3/go-rpc-provider/provider_wrapper"
	"github.com/openweb3/web3go"
)

type ethClientOption struct {
	baseClientOption
	providers.Option
}

func (o *ethClientOption) SetRetryCount(retry int) {
	o.RetryCount = retry
}

func (o *ethClientOption) SetRetryInterval(retryInterval time.Duration) {
	o.RetryInterval = retryInterval
}

func (o *ethClientOption) SetRequestTimeout(reqTimeout time.Duration) {
	o.RequestTimeout = reqTimeout
}

func (o *ethClientOption) SetMaxConnsPerHost(maxConns int) {
	o.MaxConnectionPerHost = maxConns
}

// NewEthClient creates an EVM JSON-RPC client to the specified url.
func NewEthClient(url string, options ...ClientOption) (*web3go.Client, error) {
	var opt ethClientOption
	for _, o := range options {
		o(&opt)
	}

	eth, err := web3go.NewClientWithOption(url, web3go.ClientOption{Option: opt.Option})
	if err == nil && opt.hookMetrics {
		HookEthRpcMetricsMiddleware(eth, url)
	}

	return eth, err
}

func HookEthRpcMetricsMiddleware(eth *web3go.Client, nodeUrl string) {
	nodeName := Url2NodeName(nodeUrl)

	mp := providers.NewMiddlewarableProvider(eth.Provider())
	mp.HookCallContext(middlewareMetrics(nodeName))
	mp.HookCallContext(middlewareLog(nodeName))
	eth.SetProvider(mp)
}
