package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"hbcheckup/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the activity log, state directory, port, and peers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			if ctx.configSeen {
				fmt.Fprintln(out, renderField("Config", ctx.configPath))
			} else {
				fmt.Fprintln(out, renderField("Config", ctx.configPath+" (not found, using defaults)"))
			}

			results := preflight.RunAll(cmd.Context(), cfg)
			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}
			if !preflight.Passed(results) {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
}
