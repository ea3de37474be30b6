package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hbcheckup/internal/hbstatus"
	"hbcheckup/internal/logs"
)

func newLogCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var markersOnly bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Print the end of the HandBrake activity log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			var filter logs.Filter
			if markersOnly {
				filter = markerFilter()
			}

			out := cmd.OutOrStdout()
			page, err := logs.Last(cfg.HandbrakePath, lines, filter)
			if err != nil {
				return err
			}
			for _, line := range page.Lines {
				fmt.Fprintln(out, line)
			}
			if !follow {
				return nil
			}
			return logs.Follow(cmd.Context(), cfg.HandbrakePath, page.Offset, 0, filter, func(line string) {
				fmt.Fprintln(out, line)
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "Number of lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing lines as HandBrake writes them")
	cmd.Flags().BoolVar(&markersOnly, "markers", false, "Only show lines that change status or progress")
	return cmd
}

// markerFilter keeps lines the status machine reacts to. Status is threaded
// through so carried-over phases do not count as markers.
func markerFilter() logs.Filter {
	return func(line string) bool {
		return hbstatus.Inspect(line, hbstatus.QueueComplete).Significant()
	}
}
