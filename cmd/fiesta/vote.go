package main

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

type voteArguments struct {
	Timeout  string
	Proposal uint64
	Support  bool
}

var voteArgs voteArguments

var voteCmd = &cobra.Command{
	Use:   "vote",
	Short: "Vote for or against a proposal",
	Args:  cobra.NoArgs,
	RunE:  voteRun,
}

func init() {
	timeoutFlag(voteCmd, &voteArgs.Timeout)
	voteCmd.Flags().Uint64VarP(&voteArgs.Proposal, "proposal", "p", 0, "proposal id")
	voteCmd.Flags().BoolVarP(&voteArgs.Support, "support", "s", false, "vote in favour; omit to vote against")
}

func voteRun(cmd *cobra.Command, args []string) error {
	ctx, cancel, err := commandContext(voteArgs.Timeout)
	if err != nil {
		return err
	}
	defer cancel()
	n, err := newNode(ctx)
	if err != nil {
		return err
	}
	defer n.Close()

	hash, err := n.session.Vote(ctx, new(big.Int).SetUint64(voteArgs.Proposal), voteArgs.Support)
	if err != nil {
		return err
	}
	return printTx(n, hash)
}

type txInfo struct {
	Hash     string `json:"hash"`
	Explorer string `json:"explorer"`
}

func printTx(n *node, hash common.Hash) error {
	return printJSON(txInfo{
		Hash:     hash.Hex(),
		Explorer: n.network.TxURL(hash),
	})
}
