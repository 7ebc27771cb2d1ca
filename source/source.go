package source

import (
	"context"
	"time"

	"github.com/Conflux-Chain/go-conflux-util/viper"
	"github.com/gaswhisperer/gaswhisperer/types"
	"github.com/gaswhisperer/gaswhisperer/util"
	rpcutil "github.com/gaswhisperer/gaswhisperer/util/rpc"
	"github.com/sirupsen/logrus"
)

// Source provides the most recent gas points.
type Source interface {
	// Recent returns at most `count` most recent gas points in chronological order.
	// All available points are returned if count is non-positive.
	Recent(ctx context.Context, count int) (*types.RecentGasPoints, error)
}

type CacheConfig struct {
	// TTL of cached live windows, caching disabled if non-positive
	TTL time.Duration `default:"3s"`
	// Optional redis url to share cached windows among instances,
	// e.g. redis://:password@localhost:6379/0
	RedisUrl string
}

type Config struct {
	// Whether to fetch gas points from live RPC instead of the snapshot file
	UseRealData bool
	RpcUrl      string `default:"https://arb1.arbitrum.io/rpc"`
	// Static snapshot file, also used as fallback of live RPC
	SnapshotPath string `default:"data/gas.json"`
	// Timeout to fetch gas points from live RPC
	FetchTimeout time.Duration `default:"5s"`
	// Max number of blocks to fetch in parallel
	Concurrency int `default:"8"`

	Client rpcutil.ClientConfig
	Cache  CacheConfig
}

func mustNewConfigFromViper() (conf Config) {
	viper.MustUnmarshalKey("source", &conf)
	return conf
}

// MustNewSourceFromViper creates the gas point source from configuration, and panics if failed.
// Live RPC source is wrapped with cache (if enabled) and falls back to the snapshot on failure.
func MustNewSourceFromViper() Source {
	conf := mustNewConfigFromViper()

	snapshot := NewSnapshotSource(conf.SnapshotPath)
	if !conf.UseRealData {
		logrus.WithField("path", conf.SnapshotPath).Info("Gas point source uses snapshot file")
		return snapshot
	}

	eth, err := rpcutil.NewEthClient(
		conf.RpcUrl,
		rpcutil.WithClientConfig(conf.Client),
		rpcutil.WithClientHookMetrics(true),
	)
	if err != nil {
		logrus.WithError(err).WithField("url", conf.RpcUrl).Fatal("Failed to create eth client")
	}

	var primary Source = NewRpcSource(eth, conf.RpcUrl, conf.Concurrency)

	if conf.Cache.TTL > 0 {
		if len(conf.Cache.RedisUrl) > 0 {
			rc := util.MustNewRedisClient(conf.Cache.RedisUrl)
			primary = NewCachedSource(primary, newRedisWindowStore(rc, conf.Cache.TTL))
		} else {
			primary = NewCachedSource(primary, newMemoryWindowStore(conf.Cache.TTL))
		}
	}

	logrus.WithFields(logrus.Fields{
		"rpcUrl":       conf.RpcUrl,
		"snapshotPath": conf.SnapshotPath,
		"fetchTimeout": conf.FetchTimeout,
		"cacheTTL":     conf.Cache.TTL,
	}).Info("Gas point source uses live RPC with snapshot fallback")

	return NewFallbackSource(primary, snapshot, conf.FetchTimeout)
}
