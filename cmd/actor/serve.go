package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/actor/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Exposes every contract of the contract file as POST /actors/{name}, lists them
on GET /actors and serves Prometheus metrics on GET /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("contracts")
		addr, _ := cmd.Flags().GetString("addr")

		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		catalog, err := cli.LoadCatalog(path)
		if err != nil {
			return err
		}
		srv, err := cli.NewServer(addr, catalog, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return cli.Serve(ctx, srv, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
}
