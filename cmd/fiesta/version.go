package main

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// GitCommit is set with -ldflags "-X main.GitCommit=...". When empty the
// revision stamped by the go tool is used.
var GitCommit string

const Version = "0.1.0"

type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
	Go      string `json:"go"`
}

func buildCommit() string {
	if GitCommit != "" {
		return GitCommit
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return ""
}

func newVersionInfo(commit string) versionInfo {
	info := versionInfo{Version: Version, Go: runtime.Version()}
	if len(commit) >= 8 {
		info.Commit = commit[:8]
		info.Version += "-" + info.Commit
	}
	return info
}

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Print the version",
	Aliases: []string{"V"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(newVersionInfo(buildCommit()))
	},
}
