package main

import (
	"github.com/spf13/cobra"

	"github.com/fiestadao/fiesta-gov/config"
)

type networkArguments struct {
	List bool
}

var networkArgs networkArguments

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Show the configured network",
	Args:  cobra.NoArgs,
	RunE:  networkRun,
}

func init() {
	networkCmd.Flags().BoolVarP(&networkArgs.List, "list", "l", false, "list the built-in networks")
}

func networkRun(cmd *cobra.Command, args []string) error {
	if networkArgs.List {
		networks := make([]config.Network, 0)
		for _, name := range config.NetworkNames() {
			n, _ := config.LookupNetwork(name)
			networks = append(networks, n)
		}
		return printJSON(networks)
	}
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	network, err := cfg.ResolveNetwork()
	if err != nil {
		return err
	}
	return printJSON(struct {
		config.Network
		Contract string `json:"contract"`
	}{
		Network:  network,
		Contract: cfg.Contract.Address,
	})
}
