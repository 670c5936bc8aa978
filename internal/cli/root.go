// Package cli provides the command-line interface for the options
// analytics application.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/config"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/logging"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/marketdata"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/options"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/pricing"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/risk"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2024-01-01"
)

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Engine   *pricing.Engine
	Builder  *options.Builder
	Data     marketdata.Provider
	Account  marketdata.AccountProvider
	Assessor *risk.Assessor
	Monitor  *risk.Monitor
	Store    store.Store
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.Engine = pricing.NewEngine(pricing.Defaults{
		ImpliedVol:    cfg.MarketData.DefaultImpliedVol,
		RiskFreeRate:  cfg.MarketData.DefaultRiskFreeRate,
		DividendYield: cfg.MarketData.DefaultDividendYield,
	}, logger)

	margin := options.NewFlatMarginModel(cfg.Risk.NakedShortMarginRate)
	app.Builder = options.NewBuilder(margin, logger)

	// Market data provider: Kite when configured, paper otherwise.
	if cfg.MarketData.Provider == "kite" && cfg.Credentials.Kite.APIKey != "" {
		kite, err := marketdata.NewKiteProvider(marketdata.KiteConfig{
			APIKey:      cfg.Credentials.Kite.APIKey,
			AccessToken: cfg.Credentials.Kite.AccessToken,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Kite provider, falling back to paper")
		} else {
			app.Data = kite
			app.Account = kite
			logger.Debug().Msg("Kite market data provider initialized")
		}
	}
	if app.Data == nil {
		paper := marketdata.NewPaperProvider()
		app.Data = paper
		app.Account = paper
		logger.Debug().Msg("Paper market data provider initialized")
	}

	// Initialize SQLite journal
	dbPath := config.DefaultConfigDir() + "/trader.db"
	dataStore, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, history will be unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Msg("SQLite store initialized")
	}

	app.Assessor = risk.NewAssessor(cfg.Risk, app.Engine, margin, app.Data, app.Account, app.Store, logger)
	app.Monitor = risk.NewMonitor(app.Assessor, cfg.Monitor, logger)

	rootCmd := &cobra.Command{
		Use:   "trader",
		Short: "Options analytics and portfolio risk CLI",
		Long: `Options analytics and portfolio risk CLI.

Builds multi-leg options strategies, prices contracts with Black-Scholes,
computes Greeks and implied volatility, and monitors portfolio risk with
configurable limits and alerting.

Use 'trader help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/options-trader)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addPricingCommands(rootCmd, app)
	addStrategyCommands(rootCmd, app)
	addRiskCommands(rootCmd, app)
	addMonitorCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Options Trader v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and validate application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			output.Bold("Risk limits")
			output.Printf("  Max position risk:      %.1f%%\n", app.Config.Risk.MaxPositionRiskPercent)
			output.Printf("  Max concentration:      %.1f%%\n", app.Config.Risk.MaxConcentrationPercent)
			output.Printf("  Max margin utilization: %.0f%%\n", app.Config.Risk.MaxMarginUtilization*100)
			output.Bold("Monitoring")
			output.Printf("  Interval:     %d minutes\n", app.Config.Monitor.IntervalMinutes)
			output.Printf("  Cache TTL:    %s\n", app.Config.Monitor.CacheTTL)
			output.Printf("  Dedup window: %s\n", app.Config.Monitor.AlertDedupWindow)
			output.Bold("Market data")
			output.Printf("  Provider: %s\n", app.Config.MarketData.Provider)
			output.Printf("  Default IV: %.0f%%  Risk-free rate: %.1f%%\n",
				app.Config.MarketData.DefaultImpliedVol*100, app.Config.MarketData.DefaultRiskFreeRate*100)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write starter config and credentials files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			dir, _ := cmd.Flags().GetString("config")
			written, err := config.WriteTemplates(dir)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"written": written})
			}
			if len(written) == 0 {
				output.Info("Config files already exist, nothing written")
				return nil
			}
			for _, path := range written {
				output.Success("Wrote %s", path)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}
