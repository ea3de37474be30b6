package main

import (
	"github.com/spf13/cobra"

	"hbcheckup/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var portFlag int
	var bindFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve /checkup, /checkup-all, and the dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.ServerPort = portFlag
			}
			if cmd.Flags().Changed("bind") {
				cfg.Bind = bindFlag
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}
			srv, err := server.New(cfg, logger)
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&portFlag, "port", "p", 0, "Override serverPort")
	cmd.Flags().StringVar(&bindFlag, "bind", "", "Override the listen host")
	return cmd
}
