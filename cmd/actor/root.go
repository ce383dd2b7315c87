package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/actor/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "actor",
	Short: "Actor checks data against declarative contracts",
	Long: `Actor loads contract files (YAML or JSON), validates documents against them
and can expose every contract as an HTTP endpoint.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("contracts", "contracts.yaml", "Contract file (YAML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
}

// newLogger builds the stderr logger from the persistent flags.
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	levelFlag, _ := cmd.Flags().GetString("log-level")
	formatFlag, _ := cmd.Flags().GetString("log-format")

	level, err := logging.ParseLevel(levelFlag)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(formatFlag)
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{Level: level, Format: format}), nil
}
