package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fiestadao/fiesta-gov/config"
	"github.com/fiestadao/fiesta-gov/contract"
	"github.com/fiestadao/fiesta-gov/crypto"
	"github.com/fiestadao/fiesta-gov/types"
)

type printInfo struct {
	Home     string `json:"home"`
	Network  string `json:"network"`
	ChainID  uint64 `json:"chain_id"`
	Contract string `json:"contract"`
	Owner    string `json:"owner"`
	KeyFile  string `json:"key_file"`
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration and generate a wallet key",
	Args:  cobra.ExactArgs(0),
	RunE:  initRun,
}

func init() {
	initCmd.Flags().BoolP(types.FlagOverwrite, "o", false, "overwrite existing config and key files")
	initCmd.Flags().String(types.FlagNetwork, config.DefaultNetwork, fmt.Sprintf("network name, one of %v", config.NetworkNames()))
	initCmd.Flags().String(types.FlagContract, "", "governance contract address")
}

func initRun(cmd *cobra.Command, args []string) error {
	overwrite, _ := cmd.Flags().GetBool(types.FlagOverwrite)
	network, _ := cmd.Flags().GetString(types.FlagNetwork)
	address, _ := cmd.Flags().GetString(types.FlagContract)

	cfg := config.DefaultConfig(homeDir)
	n, ok := config.LookupNetwork(network)
	if !ok {
		return fmt.Errorf("%w: %q", config.ErrUnknownNetwork, network)
	}
	cfg.Network.Name = network
	if address != "" {
		if err := contract.ValidateAddress(address); err != nil {
			return err
		}
		cfg.Contract.Address = address
	}

	if _, err := os.Stat(cfg.ConfigFile()); err == nil && !overwrite {
		return fmt.Errorf("config file %s already exists, use --%s to replace it", cfg.ConfigFile(), types.FlagOverwrite)
	}
	if err := config.WriteConfigFile(cfg.ConfigFile(), cfg); err != nil {
		return err
	}

	var owner string
	key, err := crypto.LoadKeyFile(cfg.KeyFilePath())
	switch {
	case err == nil && !overwrite:
		owner = key.Address().Hex()
	case err == nil, errors.Is(err, os.ErrNotExist):
		if owner, err = config.InitializeOwner(cfg); err != nil {
			return err
		}
	default:
		return err
	}

	return printJSON(printInfo{
		Home:     cfg.Home,
		Network:  network,
		ChainID:  n.ChainID,
		Contract: cfg.Contract.Address,
		Owner:    owner,
		KeyFile:  cfg.KeyFilePath(),
	})
}
