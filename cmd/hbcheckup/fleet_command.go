package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hbcheckup/internal/api"
	"hbcheckup/internal/logging"
	"hbcheckup/internal/peers"
)

func newFleetCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "fleet",
		Short: "Show this host and every configured peer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}
			reader, err := ctx.newReader("", "")
			if err != nil {
				return err
			}

			host := localHostname()
			self := api.Failed(host)
			if snap, err := reader.Scan(); err != nil {
				logger.Debug("local scan failed", logging.Error(err))
			} else {
				self = api.FromSnapshot(host, snap)
			}

			hosts := append([]api.PeerStatus{self}, peers.NewFromConfig(cfg, logger).FetchAll(cmd.Context())...)
			if jsonOutput {
				return writeJSON(cmd, api.CheckupAllResponse{Success: true, HostData: hosts})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(fleetHeaders, fleetRows(hosts)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the aggregated checkup document as JSON")
	return cmd
}
