package config

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

type NativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// Network describes the chain the governance contract lives on.
type Network struct {
	ChainID        uint64         `json:"chainId"`
	Name           string         `json:"name"`
	RPCURL         string         `json:"rpcUrl"`
	ExplorerURL    string         `json:"explorerUrl"`
	NativeCurrency NativeCurrency `json:"nativeCurrency"`
	Testnet        bool           `json:"testnet"`
}

const (
	NetworkShibuya           = "shibuya"
	NetworkAstarZkEVMTestnet = "astar-zkevm-testnet"

	DefaultNetwork = NetworkShibuya
)

var networks = map[string]Network{
	NetworkShibuya: {
		ChainID:     81,
		Name:        "Shibuya Testnet",
		RPCURL:      "https://evm.shibuya.astar.network",
		ExplorerURL: "https://shibuya.blockscout.com",
		NativeCurrency: NativeCurrency{
			Name:     "Shibuya",
			Symbol:   "SBY",
			Decimals: 18,
		},
		Testnet: true,
	},
	NetworkAstarZkEVMTestnet: {
		ChainID:     6038361,
		Name:        "Astar zkEVM Testnet",
		RPCURL:      "https://rpc.startale.com/astar-zkevm-testnet",
		ExplorerURL: "https://astar-zkevm-testnet.blockscout.com",
		NativeCurrency: NativeCurrency{
			Name:     "Astar",
			Symbol:   "ASTR",
			Decimals: 18,
		},
		Testnet: true,
	},
}

var (
	ErrUnknownNetwork = errors.New("unknown network")
	ErrInvalidAmount  = errors.New("invalid amount")
)

// LookupNetwork returns the built-in network registered under name.
func LookupNetwork(name string) (Network, bool) {
	n, ok := networks[name]
	return n, ok
}

func NetworkNames() []string {
	return []string{NetworkShibuya, NetworkAstarZkEVMTestnet}
}

// Valid reports whether the descriptor is complete enough to dial.
func (n Network) Valid() bool {
	return n.ChainID != 0 && n.RPCURL != ""
}

func (n Network) TxURL(hash common.Hash) string {
	return fmt.Sprintf("%s/tx/%s", strings.TrimRight(n.ExplorerURL, "/"), hash.Hex())
}

func (n Network) AddressURL(addr common.Address) string {
	return fmt.Sprintf("%s/address/%s", strings.TrimRight(n.ExplorerURL, "/"), addr.Hex())
}

// ParseAmount converts "1.5" (native units) or "1500wei" into wei.
func (n Network) ParseAmount(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "wei") {
		v, ok := math.ParseBig256(strings.TrimSpace(strings.TrimSuffix(s, "wei")))
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		return v, nil
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	decimals := int(n.NativeCurrency.Decimals)
	if len(frac) > decimals {
		return nil, fmt.Errorf("%w: %q has more than %d decimals", ErrInvalidAmount, s, decimals)
	}
	digits := whole + frac + strings.Repeat("0", decimals-len(frac))
	if strings.ContainsAny(digits, "+-xX") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	v, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return v, nil
}

// FormatAmount renders wei in native units, trimming trailing zeros.
func (n Network) FormatAmount(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	decimals := int(n.NativeCurrency.Decimals)
	neg := wei.Sign() < 0
	digits := new(big.Int).Abs(wei).String()
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}
	whole, frac := digits[:len(digits)-decimals], strings.TrimRight(digits[len(digits)-decimals:], "0")
	out := whole
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
