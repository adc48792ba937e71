package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/fiestadao/fiesta-gov/dao"
)

type powerArguments struct {
	Timeout string
	Address string
}

var powerArgs powerArguments

var powerCmd = &cobra.Command{
	Use:   "power",
	Short: "Show staked balance and whether it is enough to propose and vote",
	Args:  cobra.NoArgs,
	RunE:  powerRun,
}

func init() {
	timeoutFlag(powerCmd, &powerArgs.Timeout)
	powerCmd.Flags().StringVarP(&powerArgs.Address, "address", "a", "", "account address, defaults to the wallet key")
}

type powerInfo struct {
	Address    string `json:"address"`
	Staked     string `json:"staked"`
	MinStake   string `json:"min_stake"`
	CanPropose bool   `json:"can_propose"`
	CanVote    bool   `json:"can_vote"`
}

func powerRun(cmd *cobra.Command, args []string) error {
	ctx, cancel, err := commandContext(powerArgs.Timeout)
	if err != nil {
		return err
	}
	defer cancel()
	n, err := newNode(ctx)
	if err != nil {
		return err
	}
	defer n.Close()

	var power dao.Power
	if powerArgs.Address != "" {
		if !common.IsHexAddress(powerArgs.Address) {
			return fmt.Errorf("invalid address %q", powerArgs.Address)
		}
		power, err = n.session.PowerOf(ctx, common.HexToAddress(powerArgs.Address))
	} else {
		power, err = n.session.RefreshVotingPower(ctx)
	}
	if err != nil {
		return err
	}
	symbol := n.network.NativeCurrency.Symbol
	return printJSON(powerInfo{
		Address:    power.Address.Hex(),
		Staked:     n.network.FormatAmount(power.Staked) + " " + symbol,
		MinStake:   n.network.FormatAmount(power.MinStake) + " " + symbol,
		CanPropose: power.CanPropose(),
		CanVote:    power.CanVote(),
	})
}
