package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukcalc/personal-finance/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators as a JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if address == "" {
				address = a.settings.Server.Address
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(a.engine, a.logger).ListenAndServe(ctx, address)
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "listen address (default from settings, :8080)")
	return cmd
}
