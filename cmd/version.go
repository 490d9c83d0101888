package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Overridden at build time via -ldflags.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the talentscout version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s\n", app, version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
