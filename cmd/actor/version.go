package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/actor"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of actor",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "actor version %s\n", strings.TrimSpace(actor.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
