package main

import (
	"github.com/aretw0/actor/internal/cli"
	"github.com/spf13/cobra"
)

var contractsCmd = &cobra.Command{
	Use:   "contracts",
	Short: "List the contracts of the contract file",
	Long:  `Prints every contract with its parent and effective rules. A "?" marks optional attributes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("contracts")
		catalog, err := cli.LoadCatalog(path)
		if err != nil {
			return err
		}
		return cli.ListContracts(cmd.OutOrStdout(), catalog)
	},
}

func init() {
	rootCmd.AddCommand(contractsCmd)
}
