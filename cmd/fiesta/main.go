package main

import (
	"fmt"
	"os"
)

func main() {
	clCmd.AddCommand(initCmd)
	clCmd.AddCommand(serveCmd)
	clCmd.AddCommand(proposalsCmd)
	clCmd.AddCommand(proposeCmd)
	clCmd.AddCommand(voteCmd)
	clCmd.AddCommand(stakeCmd)
	clCmd.AddCommand(unstakeCmd)
	clCmd.AddCommand(powerCmd)
	clCmd.AddCommand(accountCmd)
	clCmd.AddCommand(networkCmd)
	clCmd.AddCommand(versionCmd)
	if err := clCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
