package source

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/gaswhisperer/gaswhisperer/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// snapshot is the static gas data document, e.g. {"recent": [{"gas_gwei": 10.5}, ...]}.
type snapshot struct {
	Recent []json.RawMessage `json:"recent"`
}

// SnapshotSource loads gas points from a read-only local snapshot file, which is
// reloaded per request so that the snapshot could be updated out of band.
type SnapshotSource struct {
	path string
}

func NewSnapshotSource(path string) *SnapshotSource {
	return &SnapshotSource{path: path}
}

// Recent implements the `Source` interface.
func (s *SnapshotSource) Recent(ctx context.Context, count int) (*types.RecentGasPoints, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to read snapshot file")
	}

	window, err := ParseSnapshot(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to parse snapshot file %v", s.path)
	}

	return &types.RecentGasPoints{
		Source: types.PointSourceMock,
		Recent: window.Tail(count),
	}, nil
}

func (s *SnapshotSource) String() string { return "snapshot:" + s.path }

// ParseSnapshot parses the snapshot document into gas window. Each entry is either a gas
// point with `gas_gwei` field, or a raw block with `baseFeePerGas` or `gasPrice` in wei.
// Malformed entries are skipped.
func ParseSnapshot(data []byte) (types.GasWindow, error) {
	var doc snapshot
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	window := make(types.GasWindow, 0, len(doc.Recent))
	for i, entry := range doc.Recent {
		point, err := parseSnapshotEntry(entry)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"index": i,
				"entry": string(entry),
			}).WithError(err).Warn("Skipped malformed gas snapshot entry")
			continue
		}

		window = append(window, point)
	}

	return window, nil
}

func parseSnapshotEntry(entry json.RawMessage) (point types.GasPoint, err error) {
	var probe struct {
		GasGwei *float64 `json:"gas_gwei"`
	}

	if err = json.Unmarshal(entry, &probe); err != nil {
		return point, err
	}

	if probe.GasGwei != nil { // gas point
		err = json.Unmarshal(entry, &point)
		return point, err
	}

	var block rawBlock
	if err = json.Unmarshal(entry, &block); err != nil {
		return point, errors.WithMessage(err, "invalid raw block")
	}

	point, ok := newBlockFeeFromRaw(&block).toGasPoint(time.Time{})
	if !ok {
		return point, errors.New("neither gas price nor base fee found")
	}

	return point, nil
}
