package source

import (
	"context"
	"time"

	"github.com/gaswhisperer/gaswhisperer/types"
	"github.com/openweb3/web3go"
	ethtypes "github.com/openweb3/web3go/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// RpcSource fetches gas points of the most recent blocks from a live EVM chain.
type RpcSource struct {
	eth         *web3go.Client
	url         string
	concurrency int // max num of blocks to fetch in parallel
}

func NewRpcSource(eth *web3go.Client, url string, concurrency int) *RpcSource {
	return &RpcSource{eth: eth, url: url, concurrency: max(concurrency, 1)}
}

// Recent implements the `Source` interface. Blocks without base fee or gas price are skipped.
func (s *RpcSource) Recent(ctx context.Context, count int) (*types.RecentGasPoints, error) {
	if count <= 0 {
		count = types.DefaultWindowSize
	}

	latestBlockNumber, err := s.eth.Eth.BlockNumber()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to get latest block number")
	}

	if latestBlockNumber == nil || !latestBlockNumber.IsUint64() {
		return nil, errors.Errorf("invalid latest block number %v", latestBlockNumber)
	}

	latest := latestBlockNumber.Uint64()
	start := uint64(0)
	if latest+1 > uint64(count) {
		start = latest + 1 - uint64(count)
	}

	fetchedAt := time.Now()
	points := make([]*types.GasPoint, latest-start+1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for bn := start; bn <= latest; bn++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			block, err := s.eth.Eth.BlockByNumber(ethtypes.BlockNumber(bn), false)
			if err != nil {
				return errors.WithMessagef(err, "failed to get block #%v", bn)
			}

			if block == nil {
				return errors.Errorf("invalid nil block #%v", bn)
			}

			if point, ok := newBlockFeeFromEthBlock(block).toGasPoint(fetchedAt); ok {
				points[bn-start] = &point
			} else {
				logrus.WithField("blockNumber", bn).Debug("Skipped block without gas fee")
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	window := make(types.GasWindow, 0, len(points))
	for _, p := range points {
		if p != nil {
			window = append(window, *p)
		}
	}

	return &types.RecentGasPoints{Source: types.PointSourceRpc, Recent: window}, nil
}

func (s *RpcSource) String() string { return "rpc:" + s.url }
