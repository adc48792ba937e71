package contract

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	cmtlog "github.com/cometbft/cometbft/libs/log"

	"github.com/fiestadao/fiesta-gov/crypto"
)

var _ Sender = &KeyedWallet{}

// KeyedWallet signs calls with a local key and hands them to the RPC node.
type KeyedWallet struct {
	key     *crypto.Key
	chainID *big.Int
	backend bind.ContractBackend
	logger  cmtlog.Logger
}

func NewKeyedWallet(key *crypto.Key, chainID uint64, backend bind.ContractBackend, logger cmtlog.Logger) *KeyedWallet {
	return &KeyedWallet{
		key:     key,
		chainID: new(big.Int).SetUint64(chainID),
		backend: backend,
		logger:  logger.With("module", "wallet"),
	}
}

func (w *KeyedWallet) From() common.Address {
	return w.key.Address()
}

func (w *KeyedWallet) Send(ctx context.Context, call Call) (common.Hash, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(w.key.PrivateKey(), w.chainID)
	if err != nil {
		return common.Hash{}, err
	}
	opts.Context = ctx
	opts.Value = call.Value
	bc := bind.NewBoundContract(call.To, abi.ABI{}, w.backend, w.backend, w.backend)
	tx, err := bc.RawTransact(opts, call.Data)
	if err != nil {
		w.logger.Error("send transaction fail", "method", call.Method, "err", err)
		return common.Hash{}, err
	}
	w.logger.Info("transaction submitted", "method", call.Method, "hash", tx.Hash().Hex(), "nonce", tx.Nonce())
	return tx.Hash(), nil
}
