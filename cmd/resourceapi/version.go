package main

import (
	"runtime"

	"github.com/spf13/cobra"
)

var versionVerbose bool

func init() {
	versionCmd.Flags().BoolVarP(&versionVerbose, "verbose", "v", false, "Include commit, build date, and Go version")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		if !versionVerbose {
			cmd.Printf("resourceapi %s\n", Version)
			return
		}

		goVer := GoVersion
		if goVer == "unknown" {
			goVer = runtime.Version()
		}
		cmd.Printf("resourceapi %s (commit %s, built %s, %s)\n", Version, GitCommit, BuildDate, goVer)
	},
}
