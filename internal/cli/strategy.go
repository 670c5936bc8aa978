package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/options"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/pkg/utils"
)

// addStrategyCommands adds the strategy construction commands.
func addStrategyCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "strategy",
		Short: "Build and analyze options strategies",
		Long: `Build options strategies from quoted legs.

Each subcommand constructs one strategy archetype, computes its max
profit, max loss, breakevens, collateral, and margin, and optionally
renders the expiration P&L profile.`,
	}

	cmd.AddCommand(newSingleLegCmd(app, "call", "Long call", models.BuyToOpen, models.Call))
	cmd.AddCommand(newSingleLegCmd(app, "put", "Long put", models.BuyToOpen, models.Put))
	cmd.AddCommand(newSingleLegCmd(app, "short-call", "Short (naked) call", models.SellToOpen, models.Call))
	cmd.AddCommand(newSingleLegCmd(app, "short-put", "Short (naked) put", models.SellToOpen, models.Put))
	cmd.AddCommand(newCoveredCallCmd(app))
	cmd.AddCommand(newCashSecuredPutCmd(app))
	cmd.AddCommand(newProtectivePutCmd(app))
	cmd.AddCommand(newStraddleCmd(app))
	cmd.AddCommand(newStrangleCmd(app))
	cmd.AddCommand(newCondorCmd(app))
	cmd.AddCommand(newButterflyCmd(app))

	rootCmd.AddCommand(cmd)
}

// strategyFlags adds the flags shared by all strategy subcommands.
func strategyFlags(cmd *cobra.Command) {
	cmd.Flags().String("expiry", "", "Expiry date (YYYY-MM-DD)")
	cmd.Flags().Float64("qty", 1, "Contracts per leg")
	cmd.Flags().Float64("spot", 0, "Underlying price (fetched from provider when omitted)")
	cmd.Flags().Float64("vol", 0, "Implied volatility (conservative default when omitted)")
	cmd.Flags().Float64("rate", -1, "Risk-free rate (conservative default when omitted)")
	cmd.Flags().Bool("payoff", false, "Show expiration P&L profile")
	cmd.Flags().Float64("range", 0.30, "Payoff price range as fraction of spot")
	cmd.Flags().Int("steps", 21, "Payoff sample points")
	cmd.MarkFlagRequired("expiry")
}

// strategyInputs resolves the shared strategy flags into market
// conditions plus expiry and quantity.
func strategyInputs(cmd *cobra.Command, app *App, symbol string) (models.MarketConditions, time.Time, float64, error) {
	expiryStr, _ := cmd.Flags().GetString("expiry")
	qty, _ := cmd.Flags().GetFloat64("qty")
	spot, _ := cmd.Flags().GetFloat64("spot")
	vol, _ := cmd.Flags().GetFloat64("vol")
	rate, _ := cmd.Flags().GetFloat64("rate")

	expiry, err := time.Parse("2006-01-02", expiryStr)
	if err != nil {
		return models.MarketConditions{}, time.Time{}, 0, fmt.Errorf("invalid expiry %q, use YYYY-MM-DD", expiryStr)
	}

	defaults := app.Engine.Defaults()
	if spot <= 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		quote, err := app.Data.Quote(ctx, symbol)
		if err != nil {
			return models.MarketConditions{}, time.Time{}, 0, fmt.Errorf("no spot price given and quote lookup failed: %w", err)
		}
		spot = quote.Price
	}
	if vol <= 0 {
		vol = defaults.ImpliedVol
	}
	if rate < 0 {
		rate = defaults.RiskFreeRate
	}

	mc := models.MarketConditions{
		Price:         spot,
		ImpliedVol:    vol,
		RiskFreeRate:  rate,
		DividendYield: defaults.DividendYield,
		Timestamp:     time.Now(),
	}
	return mc, expiry, qty, nil
}

// showStrategy renders a built strategy: attributes, Greeks, risk
// metrics, validation results, and the optional payoff profile.
func showStrategy(cmd *cobra.Command, app *App, strategy *models.OptionsStrategy, mc models.MarketConditions) error {
	output := NewOutput(cmd)
	now := time.Now()

	greeks := app.Engine.StrategyGreeks(strategy, mc.Price, mc.ImpliedVol, mc.RiskFreeRate, mc.DividendYield, now)
	metrics := app.Engine.RiskMetrics(strategy, mc.Price, mc.ImpliedVol, mc.RiskFreeRate, mc.DividendYield, now)

	var validation *models.ValidationResult
	var fit *models.PositionValidation
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if account, err := app.Account.Account(ctx); err == nil {
		v := app.Builder.Validate(strategy, *account, now)
		validation = &v
		if positions, err := app.Account.Positions(ctx); err == nil {
			pv := app.Assessor.ValidateNewPosition(ctx, strategy, positions, *account, mc)
			fit = &pv
		}
	}

	showPayoff, _ := cmd.Flags().GetBool("payoff")
	rangePct, _ := cmd.Flags().GetFloat64("range")
	steps, _ := cmd.Flags().GetInt("steps")

	var profile []models.PnLPoint
	if showPayoff {
		pr := models.PriceRange{
			Min:   mc.Price * (1 - rangePct),
			Max:   mc.Price * (1 + rangePct),
			Steps: steps,
		}
		points, err := options.PnLProfile(strategy, pr)
		if err != nil {
			output.Error("Failed to compute payoff profile: %v", err)
			return err
		}
		profile = points
	}

	if output.IsJSON() {
		payload := map[string]interface{}{
			"strategy": strategy,
			"greeks":   greeks,
			"metrics":  metrics,
		}
		if validation != nil {
			payload["validation"] = validation
		}
		if fit != nil {
			payload["portfolio_fit"] = fit
		}
		if profile != nil {
			payload["payoff"] = profile
		}
		return output.JSON(payload)
	}

	output.Bold("%s", strategy.Name)
	output.Dim("%s", strategy.Description)
	output.Println()
	for _, leg := range strategy.Legs {
		output.Printf("  %-14s %g x %s @ %s\n",
			string(leg.Action), leg.Quantity, leg.Contract.String(), utils.FormatCurrency(leg.EntryPrice))
	}
	output.Println()
	output.Printf("  Net premium: %s\n", utils.FormatPnL(strategy.NetPremium()))
	output.Printf("  Max profit:  %s\n", output.ColoredString(ColorGreen, utils.FormatPnL(strategy.MaxProfit)))
	output.Printf("  Max loss:    %s\n", output.ColoredString(ColorRed, utils.FormatPnL(-strategy.MaxLoss)))
	breakevens := make([]string, 0, len(strategy.Breakevens))
	for _, b := range strategy.Breakevens {
		breakevens = append(breakevens, utils.FormatCurrency(b))
	}
	output.Printf("  Breakevens:  %s\n", strings.Join(breakevens, ", "))
	if strategy.Collateral > 0 {
		output.Printf("  Collateral:  %s\n", utils.FormatCurrency(strategy.Collateral))
	}
	if strategy.Margin > 0 {
		output.Printf("  Margin:      %s\n", utils.FormatCurrency(strategy.Margin))
	}

	output.Println()
	output.Bold("Greeks")
	output.Printf("  Delta %s  Gamma %s  Theta %s  Vega %s\n",
		utils.FormatGreek(greeks.Delta), utils.FormatGreek(greeks.Gamma),
		utils.FormatGreek(greeks.Theta), utils.FormatGreek(greeks.Vega))

	output.Println()
	output.Bold("Risk metrics")
	output.Printf("  1-day VaR:   %s\n", utils.FormatCurrency(metrics.ValueAtRisk))
	output.Printf("  Max drawdown: %s\n", utils.FormatPnL(-metrics.MaxDrawdown))
	output.Printf("  Prob. profit: %s\n", utils.FormatPercent(metrics.ProbabilityOfProfit*100))
	output.Printf("  Expected val: %s\n", utils.FormatPnL(metrics.ExpectedValue))

	if fit != nil {
		output.Println()
		output.Bold("Portfolio fit")
		output.Printf("  Position risk:    %s of portfolio\n", utils.FormatPercent(fit.PositionRiskPct))
		output.Printf("  Concentration:    %s in %s\n", utils.FormatPercent(fit.ConcentrationPct), string(strategy.Underlying()))
		output.Printf("  Margin impact:    %s (utilization %s)\n",
			utils.FormatCurrency(fit.MarginImpact), utils.FormatPercent(fit.ProjectedUtilization*100))
	}

	var errs, warns []string
	if validation != nil {
		errs = append(errs, validation.Errors...)
		warns = append(warns, validation.Warnings...)
	}
	if fit != nil {
		errs = append(errs, fit.Errors...)
		warns = append(warns, fit.Warnings...)
	}
	if len(errs) > 0 || len(warns) > 0 {
		output.Println()
		for _, e := range errs {
			output.Error("  ✗ %s", e)
		}
		for _, w := range warns {
			output.Warning("  ! %s", w)
		}
	}

	if profile != nil {
		output.Println()
		output.Bold("Expiration P&L")
		for _, p := range profile {
			color := output.PnLColor(p.PnL)
			output.Printf("  %10s  %s\n",
				utils.FormatCurrency(p.Price), output.ColoredString(color, utils.FormatPnL(p.PnL)))
		}
	}
	return nil
}

func newSingleLegCmd(app *App, use, short string, action models.LegAction, typ models.ContractType) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <symbol>",
		Short: short,
		Example: fmt.Sprintf(`  trader strategy %s AAPL --strike 150 --expiry 2026-12-18 --premium 5.50
  trader strategy %s SPY --strike 480 --expiry 2026-10-16 --premium 6.25 --qty 2 --payoff`, use, use),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])
			strike, _ := cmd.Flags().GetFloat64("strike")
			premium, _ := cmd.Flags().GetFloat64("premium")

			mc, expiry, qty, err := strategyInputs(cmd, app, symbol)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			contract, err := models.NewOptionContract(symbol, strike, expiry, typ)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			var strategy *models.OptionsStrategy
			switch {
			case action == models.BuyToOpen && typ == models.Call:
				strategy, err = app.Builder.LongCall(contract, qty, premium, mc)
			case action == models.BuyToOpen && typ == models.Put:
				strategy, err = app.Builder.LongPut(contract, qty, premium, mc)
			case action == models.SellToOpen && typ == models.Call:
				strategy, err = app.Builder.ShortCall(contract, qty, premium, mc)
			default:
				strategy, err = app.Builder.ShortPut(contract, qty, premium, mc)
			}
			if err != nil {
				output.Error("Failed to build strategy: %v", err)
				return err
			}
			return showStrategy(cmd, app, strategy, mc)
		},
	}
	strategyFlags(cmd)
	cmd.Flags().Float64("strike", 0, "Strike price")
	cmd.Flags().Float64("premium", 0, "Option premium per share")
	cmd.MarkFlagRequired("strike")
	cmd.MarkFlagRequired("premium")
	return cmd
}

func newCoveredCallCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "covered-call <symbol>",
		Short:   "Covered call (short call against owned shares)",
		Example: `  trader strategy covered-call AAPL --strike 160 --expiry 2026-12-18 --premium 3.20`,
		Args:    cobra.ExactArgs(1),
		RunE:    singleStrikeRunE(app, "covered-call"),
	}
	strategyFlags(cmd)
	cmd.Flags().Float64("strike", 0, "Strike price")
	cmd.Flags().Float64("premium", 0, "Option premium per share")
	cmd.MarkFlagRequired("strike")
	cmd.MarkFlagRequired("premium")
	return cmd
}

func newCashSecuredPutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cash-secured-put <symbol>",
		Short:   "Cash-secured put",
		Example: `  trader strategy cash-secured-put AAPL --strike 140 --expiry 2026-12-18 --premium 2.80`,
		Args:    cobra.ExactArgs(1),
		RunE:    singleStrikeRunE(app, "cash-secured-put"),
	}
	strategyFlags(cmd)
	cmd.Flags().Float64("strike", 0, "Strike price")
	cmd.Flags().Float64("premium", 0, "Option premium per share")
	cmd.MarkFlagRequired("strike")
	cmd.MarkFlagRequired("premium")
	return cmd
}

func newProtectivePutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "protective-put <symbol>",
		Short:   "Protective put (long put against owned shares)",
		Example: `  trader strategy protective-put AAPL --strike 140 --expiry 2026-12-18 --premium 2.80`,
		Args:    cobra.ExactArgs(1),
		RunE:    singleStrikeRunE(app, "protective-put"),
	}
	strategyFlags(cmd)
	cmd.Flags().Float64("strike", 0, "Strike price")
	cmd.Flags().Float64("premium", 0, "Option premium per share")
	cmd.MarkFlagRequired("strike")
	cmd.MarkFlagRequired("premium")
	return cmd
}

// singleStrikeRunE builds the covered-call family strategies, which all
// take one strike and one premium.
func singleStrikeRunE(app *App, kind string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		output := NewOutput(cmd)
		symbol := strings.ToUpper(args[0])
		strike, _ := cmd.Flags().GetFloat64("strike")
		premium, _ := cmd.Flags().GetFloat64("premium")

		mc, expiry, qty, err := strategyInputs(cmd, app, symbol)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		var strategy *models.OptionsStrategy
		switch kind {
		case "covered-call":
			var contract models.OptionContract
			contract, err = models.NewOptionContract(symbol, strike, expiry, models.Call)
			if err == nil {
				strategy, err = app.Builder.CoveredCall(contract, qty, premium, mc)
			}
		case "cash-secured-put":
			var contract models.OptionContract
			contract, err = models.NewOptionContract(symbol, strike, expiry, models.Put)
			if err == nil {
				strategy, err = app.Builder.CashSecuredPut(contract, qty, premium, mc)
			}
		default:
			var contract models.OptionContract
			contract, err = models.NewOptionContract(symbol, strike, expiry, models.Put)
			if err == nil {
				strategy, err = app.Builder.ProtectivePut(contract, qty, premium, mc)
			}
		}
		if err != nil {
			output.Error("Failed to build strategy: %v", err)
			return err
		}
		return showStrategy(cmd, app, strategy, mc)
	}
}

func newStraddleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "straddle <symbol>",
		Short:   "Long straddle (call and put at the same strike)",
		Example: `  trader strategy straddle AAPL --strike 150 --expiry 2026-12-18 --call-premium 5.50 --put-premium 4.80`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])
			strike, _ := cmd.Flags().GetFloat64("strike")
			callPremium, _ := cmd.Flags().GetFloat64("call-premium")
			putPremium, _ := cmd.Flags().GetFloat64("put-premium")

			mc, expiry, qty, err := strategyInputs(cmd, app, symbol)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			call, err := models.NewOptionContract(symbol, strike, expiry, models.Call)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			put, err := models.NewOptionContract(symbol, strike, expiry, models.Put)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			strategy, err := app.Builder.LongStraddle(call, put, qty, callPremium, putPremium, mc)
			if err != nil {
				output.Error("Failed to build strategy: %v", err)
				return err
			}
			return showStrategy(cmd, app, strategy, mc)
		},
	}
	strategyFlags(cmd)
	cmd.Flags().Float64("strike", 0, "Shared strike price")
	cmd.Flags().Float64("call-premium", 0, "Call premium per share")
	cmd.Flags().Float64("put-premium", 0, "Put premium per share")
	cmd.MarkFlagRequired("strike")
	cmd.MarkFlagRequired("call-premium")
	cmd.MarkFlagRequired("put-premium")
	return cmd
}

func newStrangleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "strangle <symbol>",
		Short:   "Long strangle (OTM call and OTM put)",
		Example: `  trader strategy strangle AAPL --put-strike 140 --call-strike 160 --expiry 2026-12-18 --call-premium 2.10 --put-premium 1.90`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])
			putStrike, _ := cmd.Flags().GetFloat64("put-strike")
			callStrike, _ := cmd.Flags().GetFloat64("call-strike")
			callPremium, _ := cmd.Flags().GetFloat64("call-premium")
			putPremium, _ := cmd.Flags().GetFloat64("put-premium")

			mc, expiry, qty, err := strategyInputs(cmd, app, symbol)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			call, err := models.NewOptionContract(symbol, callStrike, expiry, models.Call)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			put, err := models.NewOptionContract(symbol, putStrike, expiry, models.Put)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			strategy, err := app.Builder.LongStrangle(call, put, qty, callPremium, putPremium, mc)
			if err != nil {
				output.Error("Failed to build strategy: %v", err)
				return err
			}
			return showStrategy(cmd, app, strategy, mc)
		},
	}
	strategyFlags(cmd)
	cmd.Flags().Float64("put-strike", 0, "Put strike price")
	cmd.Flags().Float64("call-strike", 0, "Call strike price")
	cmd.Flags().Float64("call-premium", 0, "Call premium per share")
	cmd.Flags().Float64("put-premium", 0, "Put premium per share")
	cmd.MarkFlagRequired("put-strike")
	cmd.MarkFlagRequired("call-strike")
	cmd.MarkFlagRequired("call-premium")
	cmd.MarkFlagRequired("put-premium")
	return cmd
}

func newCondorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "condor <symbol>",
		Short: "Iron condor (short put spread plus short call spread)",
		Example: `  trader strategy condor SPY --strikes 440,450,510,520 --expiry 2026-10-16 \
      --premiums 1.00,2.00,2.00,1.00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])

			strikes, err := parseFloats(cmd, "strikes", 4)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			premiums, err := parseFloats(cmd, "premiums", 4)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			mc, expiry, qty, err := strategyInputs(cmd, app, symbol)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			contracts := make([]models.OptionContract, 4)
			types := []models.ContractType{models.Put, models.Put, models.Call, models.Call}
			for i := range strikes {
				contracts[i], err = models.NewOptionContract(symbol, strikes[i], expiry, types[i])
				if err != nil {
					output.Error("%v", err)
					return err
				}
			}

			strategy, err := app.Builder.IronCondor(options.CondorQuotes{
				PutBuy:          contracts[0],
				PutSell:         contracts[1],
				CallSell:        contracts[2],
				CallBuy:         contracts[3],
				PutBuyPremium:   premiums[0],
				PutSellPremium:  premiums[1],
				CallSellPremium: premiums[2],
				CallBuyPremium:  premiums[3],
			}, qty, mc)
			if err != nil {
				output.Error("Failed to build strategy: %v", err)
				return err
			}
			return showStrategy(cmd, app, strategy, mc)
		},
	}
	strategyFlags(cmd)
	cmd.Flags().String("strikes", "", "Four strikes: put-buy,put-sell,call-sell,call-buy")
	cmd.Flags().String("premiums", "", "Four premiums in the same order")
	cmd.MarkFlagRequired("strikes")
	cmd.MarkFlagRequired("premiums")
	return cmd
}

func newButterflyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "butterfly <symbol>",
		Short:   "Long call butterfly",
		Example: `  trader strategy butterfly AAPL --strikes 140,150,160 --expiry 2026-12-18 --premiums 12.00,6.00,2.50`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])

			strikes, err := parseFloats(cmd, "strikes", 3)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			premiums, err := parseFloats(cmd, "premiums", 3)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			mc, expiry, qty, err := strategyInputs(cmd, app, symbol)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			contracts := make([]models.OptionContract, 3)
			for i := range strikes {
				contracts[i], err = models.NewOptionContract(symbol, strikes[i], expiry, models.Call)
				if err != nil {
					output.Error("%v", err)
					return err
				}
			}

			strategy, err := app.Builder.Butterfly(contracts[0], contracts[1], contracts[2],
				qty, premiums[0], premiums[1], premiums[2], mc)
			if err != nil {
				output.Error("Failed to build strategy: %v", err)
				return err
			}
			return showStrategy(cmd, app, strategy, mc)
		},
	}
	strategyFlags(cmd)
	cmd.Flags().String("strikes", "", "Three strikes: lower,middle,upper")
	cmd.Flags().String("premiums", "", "Three premiums in the same order")
	cmd.MarkFlagRequired("strikes")
	cmd.MarkFlagRequired("premiums")
	return cmd
}

// parseFloats parses a comma-separated flag value into exactly n floats.
func parseFloats(cmd *cobra.Command, flag string, n int) ([]float64, error) {
	raw, _ := cmd.Flags().GetString(flag)
	parts := strings.Split(raw, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("--%s needs %d comma-separated values", flag, n)
	}
	values := make([]float64, n)
	for i, p := range parts {
		var v float64
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%g", &v); err != nil {
			return nil, fmt.Errorf("--%s: invalid number %q", flag, p)
		}
		values[i] = v
	}
	return values, nil
}
