package main

import (
	"errors"
	"io"
	"os"

	"github.com/aretw0/actor/internal/cli"
	"github.com/aretw0/actor/pkg/observability"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var errInvalid = errors.New("input does not satisfy the contract")

var checkCmd = &cobra.Command{
	Use:   "check <contract> [file]",
	Short: "Validate a document against a contract",
	Long: `Reads a YAML or JSON document from file (or stdin when omitted or "-") and
validates it against the named contract. Exits with status 1 when it is invalid.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("contracts")
		format, _ := cmd.Flags().GetString("format")

		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		catalog, err := cli.LoadCatalog(path)
		if err != nil {
			return err
		}

		var in io.Reader = cmd.InOrStdin()
		if len(args) == 2 && args[1] != "-" {
			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		input, err := cli.ReadInput(in)
		if err != nil {
			return err
		}

		journal := observability.NewJournal()
		ctx, err := cli.Check(catalog, args[0], input, logger, journal.Hooks())
		if err != nil {
			return err
		}
		if trace, _ := cmd.Flags().GetBool("trace"); trace {
			if err := cli.WriteTrace(cmd.ErrOrStderr(), journal, ctx.ID()); err != nil {
				return err
			}
		}
		report := cli.NewReport(args[0], ctx)
		out := termenv.NewOutput(cmd.OutOrStdout())
		if err := cli.WriteReport(out, report, format, out.Profile); err != nil {
			return err
		}
		if !report.Success {
			return errInvalid
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: text or json")
	checkCmd.Flags().Bool("trace", false, "Print the lifecycle of the invocation to stderr")
}
