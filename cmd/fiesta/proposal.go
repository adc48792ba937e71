package main

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/spf13/cobra"

	"github.com/fiestadao/fiesta-gov/types"
)

type proposalsArguments struct {
	Timeout string
	All     bool
}

var proposalsArgs proposalsArguments

var proposalsCmd = &cobra.Command{
	Use:   "proposals",
	Short: "List proposals that are still open for voting",
	Args:  cobra.NoArgs,
	RunE:  proposalsRun,
}

func init() {
	timeoutFlag(proposalsCmd, &proposalsArgs.Timeout)
	proposalsCmd.Flags().BoolVarP(&proposalsArgs.All, "all", "a", false, "list every proposal, not only active ones")
}

type proposalView struct {
	types.Proposal
	Status string `json:"status"`
}

func proposalsRun(cmd *cobra.Command, args []string) error {
	ctx, cancel, err := commandContext(proposalsArgs.Timeout)
	if err != nil {
		return err
	}
	defer cancel()
	n, err := newNode(ctx)
	if err != nil {
		return err
	}
	defer n.Close()

	var proposals []types.Proposal
	if proposalsArgs.All {
		proposals, err = allProposals(ctx, n)
	} else {
		proposals, err = n.session.ActiveProposals(ctx)
	}
	if err != nil {
		return err
	}
	now := time.Now()
	views := make([]proposalView, 0, len(proposals))
	for _, p := range proposals {
		views = append(views, proposalView{Proposal: p, Status: p.Status(now).String()})
	}
	return printJSON(views)
}

func allProposals(ctx context.Context, n *node) ([]types.Proposal, error) {
	scan, err := n.session.ScanProposals(ctx)
	if err != nil {
		return nil, err
	}
	proposals := make([]types.Proposal, 0, scan.Total())
	for scan.Next(ctx) {
		if err := scan.Err(); err != nil {
			n.logger.Error("get proposal fail", "id", scan.ID(), "err", err)
			continue
		}
		proposals = append(proposals, scan.Proposal())
	}
	return proposals, ctx.Err()
}

type proposeArguments struct {
	Timeout     string
	Project     uint64
	Title       string
	Description string
}

var proposeArgs proposeArguments

var proposeCmd = &cobra.Command{
	Use:   "propose",
	Short: "Create a funding proposal",
	Args:  cobra.NoArgs,
	RunE:  proposeRun,
}

func init() {
	timeoutFlag(proposeCmd, &proposeArgs.Timeout)
	proposeCmd.Flags().Uint64VarP(&proposeArgs.Project, "project", "p", 0, "project id")
	proposeCmd.Flags().StringVar(&proposeArgs.Title, "title", "", "proposal title")
	proposeCmd.Flags().StringVar(&proposeArgs.Description, "description", "", "proposal description")
}

func proposeRun(cmd *cobra.Command, args []string) error {
	ctx, cancel, err := commandContext(proposeArgs.Timeout)
	if err != nil {
		return err
	}
	defer cancel()
	n, err := newNode(ctx)
	if err != nil {
		return err
	}
	defer n.Close()

	power, err := n.session.RefreshVotingPower(ctx)
	if err == nil && !power.CanPropose() {
		fmt.Printf("warning: staked %s %s is below the %s %s needed to propose\n",
			n.network.FormatAmount(power.Staked), n.network.NativeCurrency.Symbol,
			n.network.FormatAmount(power.MinStake), n.network.NativeCurrency.Symbol)
	}
	projectID := new(big.Int).SetUint64(proposeArgs.Project)
	hash, err := n.session.CreateProposal(ctx, projectID, proposeArgs.Title, proposeArgs.Description)
	if err != nil {
		return err
	}
	return printTx(n, hash)
}
