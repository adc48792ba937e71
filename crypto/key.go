package crypto

import (
	"crypto/ecdsa"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	eth_crypto "github.com/ethereum/go-ethereum/crypto"
)

// Key is a wallet key loaded from a hex key file.
type Key struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
}

func LoadKeyFile(keyFilePath string) (*Key, error) {
	dat, err := os.ReadFile(keyFilePath)
	if err != nil {
		return nil, err
	}
	return ParseKey(string(dat))
}

func ParseKey(hexKey string) (*Key, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	priv, err := eth_crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return &Key{
		privateKey: priv,
		address:    eth_crypto.PubkeyToAddress(priv.PublicKey),
	}, nil
}

func (k *Key) PrivateKey() *ecdsa.PrivateKey {
	return k.privateKey
}

func (k *Key) Address() common.Address {
	return k.address
}

func (k *Key) PublicKey() []byte {
	return eth_crypto.FromECDSAPub(&k.privateKey.PublicKey)
}
