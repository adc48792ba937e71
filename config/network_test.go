package config

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupNetwork(t *testing.T) {
	n, ok := LookupNetwork(NetworkShibuya)
	require.True(t, ok)
	assert.Equal(t, uint64(81), n.ChainID)
	assert.Equal(t, "https://evm.shibuya.astar.network", n.RPCURL)
	assert.True(t, n.Valid())

	_, ok = LookupNetwork("mainnet")
	assert.False(t, ok)
	assert.False(t, Network{}.Valid())
}

func TestExplorerLinks(t *testing.T) {
	n, _ := LookupNetwork(NetworkShibuya)
	hash := common.HexToHash("0x01")
	addr := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	assert.Equal(t, "https://shibuya.blockscout.com/tx/"+hash.Hex(), n.TxURL(hash))
	assert.Equal(t, "https://shibuya.blockscout.com/address/"+addr.Hex(), n.AddressURL(addr))
}

func TestParseAmount(t *testing.T) {
	n, _ := LookupNetwork(NetworkShibuya)
	oneEther := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

	cases := []struct {
		in   string
		want *big.Int
	}{
		{"1", oneEther},
		{"10", new(big.Int).Mul(oneEther, big.NewInt(10))},
		{"1.5", new(big.Int).Div(new(big.Int).Mul(oneEther, big.NewInt(3)), big.NewInt(2))},
		{".25", new(big.Int).Div(oneEther, big.NewInt(4))},
		{"1500wei", big.NewInt(1500)},
	}
	for _, c := range cases {
		got, err := n.ParseAmount(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, 0, c.want.Cmp(got), c.in)
	}

	for _, bad := range []string{"abc", "-1", "1.0000000000000000001", "1e5", "xwei"} {
		_, err := n.ParseAmount(bad)
		assert.ErrorIs(t, err, ErrInvalidAmount, bad)
	}
}

func TestFormatAmount(t *testing.T) {
	n, _ := LookupNetwork(NetworkShibuya)
	v, err := n.ParseAmount("12.05")
	require.NoError(t, err)
	assert.Equal(t, "12.05", n.FormatAmount(v))
	assert.Equal(t, "0.000000000000000005", n.FormatAmount(big.NewInt(5)))
	assert.Equal(t, "0", n.FormatAmount(nil))
	assert.Equal(t, "0", n.FormatAmount(big.NewInt(0)))
}
