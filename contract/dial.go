package contract

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/fiestadao/fiesta-gov/config"
)

const ClientIDHeader = "x-client-id"

// Dial connects to the network RPC endpoint and checks that it serves the
// configured chain.
func Dial(ctx context.Context, network config.Network, clientID string) (*ethclient.Client, error) {
	if !network.Valid() {
		return nil, ErrNoActiveChain
	}
	var opts []rpc.ClientOption
	if clientID != "" {
		opts = append(opts, rpc.WithHeader(ClientIDHeader, clientID))
	}
	rc, err := rpc.DialOptions(ctx, network.RPCURL, opts...)
	if err != nil {
		return nil, err
	}
	cli := ethclient.NewClient(rc)
	chainID, err := cli.ChainID(ctx)
	if err != nil {
		cli.Close()
		return nil, err
	}
	if !chainID.IsUint64() || chainID.Uint64() != network.ChainID {
		cli.Close()
		return nil, fmt.Errorf("%w: rpc reports chain %v, configured %d", ErrWrongNetwork, chainID, network.ChainID)
	}
	return cli, nil
}
