// cmd/diet-manager/version.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of diet-manager",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "diet-manager version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
