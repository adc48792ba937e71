package crypto

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	eth_crypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKeyFile(t *testing.T) {
	priv, err := eth_crypto.GenerateKey()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "owner_priv_key")
	require.NoError(t, os.WriteFile(path, []byte(hex.EncodeToString(eth_crypto.FromECDSA(priv))+"\n"), 0o600))

	key, err := LoadKeyFile(path)
	require.NoError(t, err)
	assert.Equal(t, eth_crypto.PubkeyToAddress(priv.PublicKey), key.Address())
	assert.Len(t, key.PublicKey(), 65)
}

func TestParseKeyRejectsGarbage(t *testing.T) {
	_, err := ParseKey("not-a-key")
	assert.Error(t, err)

	_, err = LoadKeyFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
