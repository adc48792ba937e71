package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fiestadao/fiesta-gov/crypto"
)

type accountArguments struct {
	KeyFile string
}

var accountArgs accountArguments

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Print the wallet address derived from the key file",
	Args:  cobra.NoArgs,
	RunE:  accountRun,
}

func init() {
	accountCmd.Flags().StringVarP(&accountArgs.KeyFile, "key", "k", "", "private key file, defaults to wallet.key_file")
}

func accountRun(cmd *cobra.Command, args []string) error {
	keyFile := accountArgs.KeyFile
	var explorer string
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if keyFile == "" {
		keyFile = cfg.KeyFilePath()
	}
	key, err := crypto.LoadKeyFile(keyFile)
	if err != nil {
		return fmt.Errorf("load key %s: %w", keyFile, err)
	}
	if network, err := cfg.ResolveNetwork(); err == nil && network.ExplorerURL != "" {
		explorer = network.AddressURL(key.Address())
	}
	return printJSON(struct {
		Address  string `json:"address"`
		PubKey   string `json:"pubkey"`
		Explorer string `json:"explorer,omitempty"`
	}{
		Address:  key.Address().Hex(),
		PubKey:   hex.EncodeToString(key.PublicKey()),
		Explorer: explorer,
	})
}
