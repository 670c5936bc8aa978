package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/pkg/utils"
)

// addRiskCommands adds portfolio risk assessment commands.
func addRiskCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Portfolio risk assessment",
		Long:  "Assess portfolio risk, view the dashboard, and browse assessment history.",
	}

	cmd.AddCommand(newRiskAssessCmd(app))
	cmd.AddCommand(newRiskDashboardCmd(app))
	cmd.AddCommand(newRiskHistoryCmd(app))
	cmd.AddCommand(newRiskAlertsCmd(app))

	rootCmd.AddCommand(cmd)
}

func newRiskAssessCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Run a portfolio risk assessment",
		Long: `Run an on-demand portfolio risk assessment.

Fetches current positions and account state, aggregates portfolio
Greeks, and scores leverage, concentration, and value-at-risk against
the configured limits. Results are cached for the configured TTL;
use --refresh to force a fresh assessment.`,
		Example: `  trader risk assess
  trader risk assess --refresh --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			refresh, _ := cmd.Flags().GetBool("refresh")
			var assessment *models.RiskAssessment
			var err error
			if refresh {
				assessment, err = app.Monitor.Refresh(ctx)
			} else {
				assessment, err = app.Monitor.CurrentMetrics(ctx)
			}
			if err != nil {
				output.Error("Assessment failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(assessment)
			}
			displayAssessment(output, assessment)
			return nil
		},
	}
	cmd.Flags().Bool("refresh", false, "Bypass the cached assessment")
	return cmd
}

func displayAssessment(output *Output, a *models.RiskAssessment) {
	output.Bold("Portfolio Risk Assessment")
	output.Dim("As of %s", a.Timestamp.Format("2006-01-02 15:04:05"))
	output.Println()

	scoreColor := ColorGreen
	switch a.Level {
	case models.RiskHigh:
		scoreColor = ColorRed
	case models.RiskElevated, models.RiskModerate:
		scoreColor = ColorYellow
	}
	output.Printf("  Risk score: %s (%s)\n",
		output.ColoredString(scoreColor, utils.FormatGreek(a.Score)), string(a.Level))
	output.Printf("  Portfolio value: %s\n", utils.FormatCurrency(a.PortfolioValue))
	output.Printf("  Options value:   %s\n", utils.FormatCurrency(a.OptionsValue))
	output.Printf("  1-day VaR:       %s\n", utils.FormatCurrency(a.VaR))

	output.Println()
	output.Bold("Greeks")
	output.Printf("  Delta %s  Gamma %s  Theta %s  Vega %s\n",
		utils.FormatGreek(a.Greeks.Delta), utils.FormatGreek(a.Greeks.Gamma),
		utils.FormatGreek(a.Greeks.Theta), utils.FormatGreek(a.Greeks.Vega))

	output.Println()
	output.Bold("Margin")
	output.Printf("  Used: %s  Available: %s  Utilization: %s\n",
		utils.FormatCurrency(a.Margin.UsedMargin),
		utils.FormatCurrency(a.Margin.AvailableMargin),
		utils.FormatPercent(a.Margin.Utilization*100))

	if len(a.Concentration.Exposure) > 0 {
		output.Println()
		output.Bold("Concentration")
		for symbol, share := range a.Concentration.Exposure {
			line := "  " + string(symbol) + ": " + utils.FormatPercent(share*100)
			flagged := false
			for _, f := range a.Concentration.Flagged {
				if f == symbol {
					flagged = true
					break
				}
			}
			if flagged {
				output.Warning("%s (concentrated)", line)
			} else {
				output.Println(line)
			}
		}
	}

	if len(a.StressResults) > 0 {
		output.Println()
		output.Bold("Stress scenarios")
		for _, s := range a.StressResults {
			color := output.PnLColor(s.PnL)
			output.Printf("  %-12s %s\n", s.Scenario, output.ColoredString(color, utils.FormatPnL(s.PnL)))
		}
	}

	if len(a.Alerts) > 0 {
		output.Println()
		output.Bold("Alerts")
		for _, alert := range a.Alerts {
			displayAlert(output, alert)
		}
	}
}

func displayAlert(output *Output, alert models.RiskAlert) {
	symbol := string(alert.Symbol)
	if symbol == "" {
		symbol = "PORTFOLIO"
	}
	output.Printf("  [%s] %s %s: %s\n",
		output.SeverityString(string(alert.Severity)),
		string(alert.Category), symbol, alert.Message)
}

func newRiskDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the portfolio risk dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			data, err := app.Monitor.DashboardData(ctx)
			if err != nil {
				output.Error("Failed to build dashboard: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(data)
			}

			output.Bold("Risk Dashboard")
			output.Dim("Updated %s", data.LastUpdated.Format("2006-01-02 15:04:05"))
			output.Println()
			output.Printf("  Score: %.0f (%s)\n", data.RiskScore, string(data.RiskLevel))
			output.Printf("  Portfolio value:  %s\n", utils.FormatCurrency(data.PortfolioValue))
			output.Printf("  Options exposure: %s\n", utils.FormatPercent(data.OptionsExposurePct))
			output.Printf("  Margin used:      %s (%s)\n",
				utils.FormatCurrency(data.Margin.UsedMargin),
				utils.FormatPercent(data.Margin.Utilization*100))
			output.Printf("  1-day VaR:        %s\n", utils.FormatCurrency(data.RiskMetrics.ValueAtRisk))
			output.Printf("  Delta %s  Theta %s  Vega %s\n",
				utils.FormatGreek(data.PortfolioGreeks.Delta),
				utils.FormatGreek(data.PortfolioGreeks.Theta),
				utils.FormatGreek(data.PortfolioGreeks.Vega))

			if len(data.Alerts) > 0 {
				output.Println()
				output.Bold("Active alerts")
				for _, alert := range data.Alerts {
					displayAlert(output, alert)
				}
			}
			return nil
		},
	}
}

func newRiskHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show journaled assessment history",
		Example: `  trader risk history
  trader risk history --days 30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				output.Error("Store unavailable, history is disabled")
				return nil
			}

			days, _ := cmd.Flags().GetInt("days")
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			to := time.Now()
			from := to.AddDate(0, 0, -days)
			records, err := app.Store.GetAssessments(ctx, from, to)
			if err != nil {
				output.Error("Failed to load history: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(records)
			}

			if len(records) == 0 {
				output.Dim("No assessments in the last %d days", days)
				return nil
			}

			output.Bold("Assessment history (last %d days)", days)
			output.Printf("%-20s %-6s %-10s %-12s %-12s %s\n",
				"Timestamp", "Score", "Level", "VaR", "Margin", "Alerts")
			output.Println(strings.Repeat("-", 72))
			for _, r := range records {
				output.Printf("%-20s %-6.0f %-10s %-12s %-12s %d\n",
					r.Timestamp.Format("2006-01-02 15:04"), r.Score, string(r.Level),
					utils.FormatCurrency(r.ValueAtRisk),
					utils.FormatPercent(r.MarginUtilization*100), r.AlertCount)
			}
			return nil
		},
	}
	cmd.Flags().Int("days", 7, "History window in days")
	return cmd
}

func newRiskAlertsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Show recent journaled alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				output.Error("Store unavailable, alert history is disabled")
				return nil
			}

			limit, _ := cmd.Flags().GetInt("limit")
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			alerts, err := app.Store.GetRecentAlerts(ctx, limit)
			if err != nil {
				output.Error("Failed to load alerts: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(alerts)
			}

			if len(alerts) == 0 {
				output.Dim("No recent alerts")
				return nil
			}
			for _, alert := range alerts {
				output.Printf("%s  ", alert.Timestamp.Format("2006-01-02 15:04"))
				displayAlert(output, alert)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum alerts to show")
	return cmd
}
