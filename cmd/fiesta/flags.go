package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func timeoutFlag(cmd *cobra.Command, timeout *string) {
	cmd.Flags().StringVarP(timeout, "timeout", "t", "30s", "rpc timeout")
}

func printJSON(v interface{}) error {
	dat, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(dat))
	return nil
}
