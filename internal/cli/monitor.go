package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/notify"
)

// addMonitorCommands adds the continuous monitoring commands.
func addMonitorCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Continuous portfolio risk monitoring",
		Long: `Run the continuous risk-monitoring loop.

The monitor performs an immediate assessment on start, then reassesses
on the configured interval. New alerts are delivered to the terminal
and to the optional webhook.`,
	}

	cmd.AddCommand(newMonitorStartCmd(app))
	cmd.AddCommand(newMonitorStatusCmd(app))

	rootCmd.AddCommand(cmd)
}

func newMonitorStartCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the monitoring loop (runs until interrupted)",
		Example: `  trader monitor start
  trader monitor start --interval 1
  trader monitor start --webhook https://hooks.example.com/risk`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			interval, _ := cmd.Flags().GetInt("interval")
			webhookURL, _ := cmd.Flags().GetString("webhook")
			if interval <= 0 {
				interval = app.Config.Monitor.IntervalMinutes
			}

			channels := []notify.Channel{
				&notify.TerminalChannel{Out: cmd.OutOrStdout(), Enabled: true},
			}
			if webhookURL != "" {
				channels = append(channels, &notify.WebhookChannel{URL: webhookURL, Enabled: true})
			}
			dispatcher := notify.NewDispatcher(app.Logger, channels...)
			unsubscribe := app.Monitor.Subscribe(dispatcher.Dispatch)
			defer unsubscribe()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			if err := app.Monitor.Start(ctx, interval); err != nil {
				output.Error("Failed to start monitor: %v", err)
				return err
			}
			output.Success("Monitoring started (every %d minutes). Press Ctrl+C to stop.", interval)

			if assessment, err := app.Monitor.CurrentMetrics(ctx); err == nil {
				displayAssessment(output, assessment)
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			<-sigCh

			output.Println()
			output.Info("Stopping monitor...")
			app.Monitor.Stop()
			output.Success("Monitor stopped")
			return nil
		},
	}
	cmd.Flags().Int("interval", 0, "Assessment interval in minutes (default from config)")
	cmd.Flags().String("webhook", "", "Webhook URL for alert delivery")
	return cmd
}

func newMonitorStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show monitor status and active alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			status := app.Monitor.Status()
			alerts := app.Monitor.ActiveAlerts()

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"running":         status.Running,
					"interval":        status.Interval.String(),
					"last_assessment": status.LastAssessment,
					"active_alerts":   alerts,
				})
			}

			if status.Running {
				output.Success("Monitor running (every %s)", status.Interval)
			} else {
				output.Dim("Monitor not running")
			}
			if !status.LastAssessment.IsZero() {
				output.Printf("Last assessment: %s\n", status.LastAssessment.Format(time.RFC1123))
			}
			if len(alerts) > 0 {
				output.Bold("Active alerts")
				for _, alert := range alerts {
					displayAlert(output, alert)
				}
			}
			return nil
		},
	}
}
