package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"hbcheckup/internal/api"
	"hbcheckup/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var minInterval time.Duration
	var refresh time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print a line whenever the HandBrake status changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}
			reader, err := ctx.newReader("", "")
			if err != nil {
				return err
			}
			host := localHostname()
			out := cmd.OutOrStdout()

			w := watch.New(reader.Path(), reader,
				watch.WithMinInterval(minInterval),
				watch.WithRefresh(refresh),
				watch.WithLogger(logger),
			)
			return w.Run(cmd.Context(), func(u watch.Update) {
				if jsonOutput {
					status := api.Failed(host)
					if u.Err == nil {
						status = api.FromSnapshot(host, u.Snapshot)
					}
					_ = writeJSONLine(out, status)
					return
				}
				printUpdate(out, u)
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print one JSON document per change")
	cmd.Flags().DurationVar(&minInterval, "min-interval", time.Second, "Minimum time between rescans")
	cmd.Flags().DurationVar(&refresh, "refresh", 30*time.Second, "Rescan this often even without writes (0 disables)")
	return cmd
}

func printUpdate(w io.Writer, u watch.Update) {
	stamp := u.At.Format("15:04:05")
	if u.Err != nil {
		fmt.Fprintf(w, "%s  error: %v\n", stamp, u.Err)
		return
	}
	line := fmt.Sprintf("%s  %s", stamp, u.Snapshot.StatusText)
	if u.Snapshot.CurrentEncode != "" {
		line += "  " + u.Snapshot.CurrentEncode
	}
	if u.Snapshot.ETA != "" {
		line += "  eta " + u.Snapshot.ETA
	}
	fmt.Fprintln(w, line)
}
