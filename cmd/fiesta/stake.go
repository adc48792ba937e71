package main

import (
	"github.com/spf13/cobra"
)

type stakeArguments struct {
	Timeout string
	Amount  string
}

var stakeArgs stakeArguments

var stakeCmd = &cobra.Command{
	Use:   "stake",
	Short: "Stake native tokens to gain voting power",
	Long: `Stake sends --amount to the governance contract. The amount is in the
network's native unit ("1.5") or in wei with a wei suffix ("1500wei").`,
	Args: cobra.NoArgs,
	RunE: stakeRun,
}

func init() {
	timeoutFlag(stakeCmd, &stakeArgs.Timeout)
	stakeCmd.Flags().StringVarP(&stakeArgs.Amount, "amount", "a", "", "amount to stake")
	stakeCmd.MarkFlagRequired("amount")
}

func stakeRun(cmd *cobra.Command, args []string) error {
	ctx, cancel, err := commandContext(stakeArgs.Timeout)
	if err != nil {
		return err
	}
	defer cancel()
	n, err := newNode(ctx)
	if err != nil {
		return err
	}
	defer n.Close()

	amount, err := n.network.ParseAmount(stakeArgs.Amount)
	if err != nil {
		return err
	}
	hash, err := n.session.Stake(ctx, amount)
	if err != nil {
		return err
	}
	return printTx(n, hash)
}

type unstakeArguments struct {
	Timeout string
}

var unstakeArgs unstakeArguments

var unstakeCmd = &cobra.Command{
	Use:   "unstake",
	Short: "Withdraw staked tokens (not available yet)",
	Args:  cobra.NoArgs,
	RunE:  unstakeRun,
}

func init() {
	timeoutFlag(unstakeCmd, &unstakeArgs.Timeout)
}

func unstakeRun(cmd *cobra.Command, args []string) error {
	ctx, cancel, err := commandContext(unstakeArgs.Timeout)
	if err != nil {
		return err
	}
	defer cancel()
	n, err := newNode(ctx)
	if err != nil {
		return err
	}
	defer n.Close()
	return n.session.Unstake(ctx)
}
