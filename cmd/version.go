package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"talent-pipeline/config"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", config.App, version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
