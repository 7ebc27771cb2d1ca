package source

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/params"
	"github.com/gaswhisperer/gaswhisperer/types"
	ethtypes "github.com/openweb3/web3go/types"
	"github.com/pkg/errors"
)

// blockFee is the normalized input to extract a gas point from a block of any representation.
type blockFee struct {
	baseFeePerGas *big.Int // base fee per gas in wei, preferred if present
	gasPrice      *big.Int // gas price in wei, used if no base fee (pre EIP-1559)
	timestamp     uint64   // unix seconds, 0 if unknown
}

func newBlockFeeFromEthBlock(block *ethtypes.Block) blockFee {
	return blockFee{
		baseFeePerGas: block.BaseFeePerGas,
		timestamp:     block.Timestamp,
	}
}

func newBlockFeeFromRaw(block *rawBlock) blockFee {
	var bf blockFee

	if block.BaseFeePerGas != nil {
		bf.baseFeePerGas = block.BaseFeePerGas.ToInt()
	}

	if block.GasPrice != nil {
		bf.gasPrice = block.GasPrice.ToInt()
	}

	if block.Timestamp != nil && block.Timestamp.ToInt().IsUint64() {
		bf.timestamp = block.Timestamp.ToInt().Uint64()
	}

	return bf
}

// toGasPoint converts the block fee into a gas point in gwei. The fallback time is used
// if block timestamp unknown. Returns false if neither base fee nor gas price available.
func (bf blockFee) toGasPoint(fallbackTime time.Time) (types.GasPoint, bool) {
	fee := bf.baseFeePerGas
	if fee == nil {
		fee = bf.gasPrice
	}

	if fee == nil {
		return types.GasPoint{}, false
	}

	gwei, _ := new(big.Float).Quo(new(big.Float).SetInt(fee), big.NewFloat(params.GWei)).Float64()

	ts := fallbackTime
	if bf.timestamp > 0 {
		ts = time.Unix(int64(bf.timestamp), 0)
	}

	return types.GasPoint{
		Timestamp: ts.UTC(),
		GasGwei:   types.RoundGwei(gwei),
	}, true
}

// rawBlock is a block decoded from JSON object, e.g. block entries in snapshot file.
type rawBlock struct {
	BaseFeePerGas *quantity `json:"baseFeePerGas"`
	GasPrice      *quantity `json:"gasPrice"`
	Timestamp     *quantity `json:"timestamp"`
}

// quantity is an integer encoded as either hex string or JSON number.
type quantity big.Int

func (q *quantity) ToInt() *big.Int {
	return (*big.Int)(q)
}

func (q *quantity) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var v hexutil.Big
		if err := v.UnmarshalJSON(data); err != nil {
			return err
		}

		q.ToInt().Set(v.ToInt())
		return nil
	}

	v, ok := new(big.Float).SetString(string(data))
	if !ok {
		return errors.Errorf("invalid quantity %s", data)
	}

	v.Int(q.ToInt())
	return nil
}
