package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSystemCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system",
		Short: "Backend status and log shipping",
	}
	cmd.AddCommand(
		newSystemInfoCommand(a),
		newSystemLogCommand(a),
	)
	return cmd
}

func newSystemInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the backend version, status and environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			info, err := a.client.SystemInfo(cmd.Context())
			if err != nil {
				fmt.Fprintln(out, a.theme.Error.Render("Backend Offline"))
				fmt.Fprintln(out, a.theme.Muted.Render(a.client.BaseURL()))
				return err
			}

			fmt.Fprintln(out, a.theme.Title.Render("Backend"))
			for _, kv := range [][2]string{
				{"Version", info.Version},
				{"Status", info.Status},
				{"Environment", info.Environment},
				{"URL", a.client.BaseURL()},
			} {
				fmt.Fprintf(out, "  %s %s\n", a.theme.Muted.Render(fmt.Sprintf("%-12s", kv[0])), kv[1])
			}
			return nil
		},
	}
}

func newSystemLogCommand(a *app) *cobra.Command {
	var (
		level    string
		meta     map[string]string
		wait     time.Duration
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "log MESSAGE",
		Short: "Send a log event to the backend, queueing it while offline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch level {
			case "info", "warn", "error":
			default:
				return fmt.Errorf("invalid level %q: must be info, warn or error", level)
			}
			if interval <= 0 {
				return fmt.Errorf("invalid retry interval %s: must be positive", interval)
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			fields := make(map[string]any, len(meta)+1)
			for k, v := range meta {
				fields[k] = v
			}
			fields["command"] = cmd.CommandPath()

			if err := a.relay.Log(ctx, level, args[0], fields); err != nil {
				fmt.Fprintln(out, a.theme.Error.Render(fmt.Sprintf("Delivery failed: %v", err)))
			}
			if a.relay.Pending() > 0 && wait > 0 {
				waitForDelivery(ctx, a, wait, interval)
			}

			if pending := a.relay.Pending(); pending > 0 {
				fmt.Fprintln(out, a.theme.Muted.Render(fmt.Sprintf("Backend unreachable, %d event(s) not delivered.", pending)))
				return fmt.Errorf("log event not delivered to %s", a.client.BaseURL())
			}
			fmt.Fprintln(out, a.theme.Success.Render("Log event delivered."))
			return nil
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", "info", "event level: info, warn or error")
	cmd.Flags().StringToStringVarP(&meta, "meta", "m", nil, "extra metadata as key=value pairs")
	cmd.Flags().DurationVar(&wait, "wait", 0, "keep retrying delivery for up to this long")
	cmd.Flags().DurationVar(&interval, "retry-interval", time.Second, "time between connectivity probes while waiting")
	return cmd
}

// waitForDelivery watches connectivity until the queue drains or wait elapses.
func waitForDelivery(ctx context.Context, a *app, wait, interval time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	a.relay.Watch(ctx, func(ctx context.Context) error {
		if a.relay.Pending() == 0 {
			cancel()
			return nil
		}
		_, err := a.client.SystemInfo(ctx)
		return err
	}, interval)
}
