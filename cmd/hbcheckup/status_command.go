package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"hbcheckup/internal/activitylog"
	"hbcheckup/internal/api"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var nowFlag string
	var estimatorFlag string
	var logFlag string

	cmd := &cobra.Command{
		Use:   "status [-]",
		Short: "Show the current HandBrake status and time remaining",
		Long: "Scan the HandBrake activity log and report the current phase, job, and ETA.\n" +
			"Pass - to read a log from stdin instead of the configured path.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if strings.TrimSpace(nowFlag) != "" {
				parsed, err := activitylog.ParseClock(strings.TrimSpace(nowFlag), now)
				if err != nil {
					return fmt.Errorf("--now: %w", err)
				}
				now = parsed
			}

			reader, err := ctx.newReader(logFlag, estimatorFlag, activitylog.WithClock(func() time.Time { return now }))
			if err != nil {
				return err
			}

			var snap activitylog.Snapshot
			if len(args) == 1 && args[0] == "-" {
				snap, err = activitylog.ScanReader(cmd.InOrStdin(), now, reader.Estimator())
			} else if len(args) == 1 {
				return fmt.Errorf("unexpected argument %q (use - for stdin or --log PATH)", args[0])
			} else {
				snap, err = reader.Scan()
			}
			if err != nil {
				return err
			}

			status := api.FromSnapshot(localHostname(), snap)
			if jsonOutput {
				return writeJSON(cmd, status)
			}
			colorize := shouldColorize(cmd.OutOrStdout())
			for _, line := range statusLines(status, colorize) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the checkup document as JSON")
	cmd.Flags().StringVar(&nowFlag, "now", "", "Evaluate the ETA as if the clock read HH:MM:SS today")
	cmd.Flags().StringVar(&estimatorFlag, "estimator", "", "ETA strategy: chapter or frame (default from config)")
	cmd.Flags().StringVar(&logFlag, "log", "", "Activity log path (default from config)")
	return cmd
}
