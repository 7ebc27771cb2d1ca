package source

import (
	"context"
	"time"

	logutil "github.com/Conflux-Chain/go-conflux-util/log"
	"github.com/gaswhisperer/gaswhisperer/types"
	"github.com/gaswhisperer/gaswhisperer/util/metrics"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

var errEmptyWindow = errors.New("no gas points available")

// FallbackSource fetches gas points from the primary source in a single attempt bounded
// by timeout, and falls back to the secondary source on any failure. It never returns
// error, instead an empty window is returned if both sources failed.
type FallbackSource struct {
	primary   Source
	secondary Source
	timeout   time.Duration

	etLogger *logutil.ErrorTolerantLogger
}

func NewFallbackSource(primary, secondary Source, timeout time.Duration) *FallbackSource {
	return &FallbackSource{
		primary:   primary,
		secondary: secondary,
		timeout:   timeout,
		etLogger:  logutil.NewErrorTolerantLogger(logutil.DefaultETConfig),
	}
}

// Recent implements the `Source` interface.
func (s *FallbackSource) Recent(ctx context.Context, count int) (*types.RecentGasPoints, error) {
	points, err := s.fetchPrimary(ctx, count)
	if err == nil && len(points.Recent) == 0 {
		err = errEmptyWindow
	}

	s.etLogger.Log(
		logrus.StandardLogger(), err, "Failed to fetch gas points from primary source, fallback to snapshot",
	)

	if err == nil {
		return points, nil
	}

	metrics.Registry.Source.Fallback().Mark(1)

	points, ferr := s.secondary.Recent(ctx, count)
	if ferr == nil {
		return points, nil
	}

	logrus.WithError(multierr.Combine(err, ferr)).
		WithField("count", count).
		Error("Failed to fetch gas points from both primary and fallback source")

	return &types.RecentGasPoints{Source: types.PointSourceMock, Recent: types.GasWindow{}}, nil
}

// fetchPrimary returns once the primary source responds or the timeout elapses, whichever
// comes first. Note, the underlying RPC request may still run in background until its own
// request timeout.
func (s *FallbackSource) fetchPrimary(ctx context.Context, count int) (*types.RecentGasPoints, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	type result struct {
		points *types.RecentGasPoints
		err    error
	}

	resultCh := make(chan result, 1)
	go func() {
		points, err := s.primary.Recent(ctx, count)
		if err == nil && points == nil {
			err = errEmptyWindow
		}
		resultCh <- result{points, err}
	}()

	select {
	case r := <-resultCh:
		return r.points, r.err
	case <-ctx.Done():
		return nil, errors.WithMessage(ctx.Err(), "primary source timed out")
	}
}
