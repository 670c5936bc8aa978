package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/errors"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/pkg/utils"
)

// addPricingCommands adds Black-Scholes pricing and Greeks commands.
func addPricingCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newPriceCmd(app))
	rootCmd.AddCommand(newGreeksCmd(app))
	rootCmd.AddCommand(newIVCmd(app))
}

// contractFlags adds the flags shared by all per-contract commands.
func contractFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("strike", 0, "Strike price")
	cmd.Flags().String("expiry", "", "Expiry date (YYYY-MM-DD)")
	cmd.Flags().String("type", "call", "Contract type (call or put)")
	cmd.Flags().Float64("spot", 0, "Underlying price (fetched from provider when omitted)")
	cmd.Flags().Float64("vol", 0, "Implied volatility, e.g. 0.25 (conservative default when omitted)")
	cmd.Flags().Float64("rate", -1, "Risk-free rate, e.g. 0.05 (conservative default when omitted)")
	cmd.Flags().Float64("div", -1, "Dividend yield (default 0)")
	cmd.MarkFlagRequired("strike")
	cmd.MarkFlagRequired("expiry")
}

// contractInputs resolves one contract plus pricing inputs from flags,
// substituting provider quotes and conservative defaults where needed.
func contractInputs(cmd *cobra.Command, app *App, symbol string) (models.OptionContract, float64, float64, float64, float64, error) {
	strike, _ := cmd.Flags().GetFloat64("strike")
	expiryStr, _ := cmd.Flags().GetString("expiry")
	typeStr, _ := cmd.Flags().GetString("type")
	spot, _ := cmd.Flags().GetFloat64("spot")
	vol, _ := cmd.Flags().GetFloat64("vol")
	rate, _ := cmd.Flags().GetFloat64("rate")
	div, _ := cmd.Flags().GetFloat64("div")

	expiry, err := time.Parse("2006-01-02", expiryStr)
	if err != nil {
		return models.OptionContract{}, 0, 0, 0, 0, apperrors.Wrapf(apperrors.ErrInvalidContract, "expiry %q, use YYYY-MM-DD", expiryStr)
	}

	var typ models.ContractType
	switch strings.ToLower(typeStr) {
	case "call", "c":
		typ = models.Call
	case "put", "p":
		typ = models.Put
	default:
		return models.OptionContract{}, 0, 0, 0, 0, apperrors.Wrapf(apperrors.ErrInvalidContract, "type %q", typeStr)
	}

	contract, err := models.NewOptionContract(symbol, strike, expiry, typ)
	if err != nil {
		return models.OptionContract{}, 0, 0, 0, 0, apperrors.Wrapf(apperrors.ErrInvalidContract, "%v", err)
	}

	defaults := app.Engine.Defaults()
	if spot <= 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		quote, err := app.Data.Quote(ctx, symbol)
		if err != nil {
			return models.OptionContract{}, 0, 0, 0, 0, fmt.Errorf("no spot price given and quote lookup failed: %w", err)
		}
		spot = quote.Price
	}
	if vol <= 0 {
		vol = defaults.ImpliedVol
	}
	if rate < 0 {
		rate = defaults.RiskFreeRate
	}
	if div < 0 {
		div = defaults.DividendYield
	}
	return contract, spot, vol, rate, div, nil
}

func newPriceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price <symbol>",
		Short: "Price an option contract with Black-Scholes",
		Example: `  trader price AAPL --strike 150 --expiry 2026-12-18
  trader price SPY --strike 480 --expiry 2026-10-16 --type put --spot 475 --vol 0.18`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])

			contract, spot, vol, rate, div, err := contractInputs(cmd, app, symbol)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			now := time.Now()
			price := app.Engine.Price(contract, spot, vol, rate, div, now)
			intrinsic := contract.IntrinsicValue(spot)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"contract":  contract.String(),
					"spot":      spot,
					"vol":       vol,
					"rate":      rate,
					"price":     price,
					"intrinsic": intrinsic,
					"extrinsic": price - intrinsic,
				})
			}

			output.Bold("%s", contract.String())
			output.Printf("  Spot: %s  IV: %s  Rate: %s\n",
				utils.FormatCurrency(spot), utils.FormatPercent(vol*100), utils.FormatPercent(rate*100))
			output.Printf("  Theoretical: %s\n", output.BoldText(utils.FormatCurrency(price)))
			output.Printf("  Intrinsic:   %s\n", utils.FormatCurrency(intrinsic))
			output.Printf("  Extrinsic:   %s\n", utils.FormatCurrency(price-intrinsic))
			return nil
		},
	}
	contractFlags(cmd)
	return cmd
}

func newGreeksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greeks <symbol>",
		Short: "Compute option Greeks",
		Long: `Compute delta, gamma, theta, vega, and rho for a contract.

Theta is quoted per calendar day, vega per 1% volatility move, and rho
per 1% rate move. With --sensitivity the Greeks are re-evaluated under
shifted spot, shifted volatility, and one day of time decay.`,
		Example: `  trader greeks AAPL --strike 150 --expiry 2026-12-18
  trader greeks SPY --strike 480 --expiry 2026-10-16 --type put --sensitivity`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])

			contract, spot, vol, rate, div, err := contractInputs(cmd, app, symbol)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			now := time.Now()
			greeks := app.Engine.ComputeGreeks(contract, spot, vol, rate, div, now)

			sensitivity, _ := cmd.Flags().GetBool("sensitivity")
			priceShift, _ := cmd.Flags().GetFloat64("price-shift")
			volShift, _ := cmd.Flags().GetFloat64("vol-shift")

			if output.IsJSON() {
				payload := map[string]interface{}{
					"contract": contract.String(),
					"spot":     spot,
					"greeks":   greeks,
				}
				if sensitivity {
					payload["sensitivity"] = app.Engine.GreeksSensitivity(contract, spot, vol, rate, div, priceShift, volShift, now)
				}
				return output.JSON(payload)
			}

			output.Bold("%s", contract.String())
			output.Printf("  Delta: %s\n", utils.FormatGreek(greeks.Delta))
			output.Printf("  Gamma: %s\n", utils.FormatGreek(greeks.Gamma))
			output.Printf("  Theta: %s /day\n", utils.FormatGreek(greeks.Theta))
			output.Printf("  Vega:  %s /1%% vol\n", utils.FormatGreek(greeks.Vega))
			output.Printf("  Rho:   %s /1%% rate\n", utils.FormatGreek(greeks.Rho))

			if sensitivity {
				s := app.Engine.GreeksSensitivity(contract, spot, vol, rate, div, priceShift, volShift, now)
				output.Println()
				output.Bold("Sensitivity")
				output.Printf("  Spot %+.0f%%:  delta %+0.4f  vega %+0.4f\n",
					priceShift*100, s.PriceShift.Delta, s.PriceShift.Vega)
				output.Printf("  Vol %+.0f%%:   delta %+0.4f  vega %+0.4f\n",
					volShift*100, s.VolShift.Delta, s.VolShift.Vega)
				output.Printf("  1d decay:  delta %+0.4f  theta %+0.4f\n",
					s.TimeDecay.Delta, s.TimeDecay.Theta)
			}
			return nil
		},
	}
	contractFlags(cmd)
	cmd.Flags().Bool("sensitivity", false, "Show Greeks under shifted inputs")
	cmd.Flags().Float64("price-shift", 0.05, "Relative spot shift for sensitivity")
	cmd.Flags().Float64("vol-shift", 0.10, "Relative volatility shift for sensitivity")
	return cmd
}

func newIVCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "iv <symbol>",
		Short: "Back out implied volatility from a market price",
		Example: `  trader iv AAPL --strike 150 --expiry 2026-12-18 --market-price 8.40
  trader iv SPY --strike 480 --expiry 2026-10-16 --type put --market-price 6.25 --spot 475`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])

			contract, spot, _, rate, div, err := contractInputs(cmd, app, symbol)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			marketPrice, _ := cmd.Flags().GetFloat64("market-price")
			if marketPrice <= 0 {
				output.Error("--market-price must be positive")
				return fmt.Errorf("market price must be positive")
			}

			now := time.Now()
			iv := app.Engine.ImpliedVolatility(contract, spot, marketPrice, rate, div, now)
			theoretical := app.Engine.Price(contract, spot, iv, rate, div, now)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"contract":     contract.String(),
					"market_price": marketPrice,
					"implied_vol":  iv,
					"repriced":     theoretical,
				})
			}

			output.Bold("%s", contract.String())
			output.Printf("  Market price: %s\n", utils.FormatCurrency(marketPrice))
			output.Printf("  Implied vol:  %s\n", output.BoldText(utils.FormatPercent(iv*100)))
			output.Printf("  Repriced:     %s\n", utils.FormatCurrency(theoretical))
			return nil
		},
	}
	contractFlags(cmd)
	cmd.Flags().Float64("market-price", 0, "Observed option price")
	cmd.MarkFlagRequired("market-price")
	return cmd
}
