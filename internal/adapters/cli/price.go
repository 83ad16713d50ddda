package cli

import (
	"context"

	"github.com/spf13/cobra"

	appTrading "github.com/andrescamacho/trading-engine-go/internal/application/trading"
	tradingQueries "github.com/andrescamacho/trading-engine-go/internal/application/trading/queries"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

// NewPriceCommand creates the price command with subcommands
func NewPriceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a purchase or a sale without trading",
		Long: `Price a purchase or a sale without moving any currency or cargo.

Examples:
  trading price buy --cargo Wool --quantity 20 --haggle success
  trading price sell --settlement Altdorf --cargo Wool --quantity 20
  trading price desperate --settlement Ubersreik --cargo Metal --quantity 10
  trading price rumor --settlement Altdorf --cargo Wool --quantity 10 --multiplier 1.5`,
	}

	cmd.AddCommand(newPriceBuyCommand())
	cmd.AddCommand(newPriceSellCommand())
	cmd.AddCommand(newPriceDesperateCommand())
	cmd.AddCommand(newPriceRumorCommand())

	return cmd
}

func newPriceBuyCommand() *cobra.Command {
	var (
		flags   tradeFlags
		partial bool
	)

	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Price a purchase in the current season",
		RunE: func(cmd *cobra.Command, args []string) error {
			haggle, err := flags.haggleOutcome()
			if err != nil {
				return err
			}
			return withRuntime(func(ctx context.Context, rt *runtime) error {
				resp, err := rt.mediator.Send(ctx, &tradingQueries.PurchasePriceQuery{Quote: appTrading.PurchaseQuote{
					CargoName:       flags.cargo,
					Quantity:        flags.quantity,
					Quality:         flags.quality,
					PartialPurchase: partial,
					Haggle:          haggle,
				}})
				if err != nil {
					return err
				}
				printBreakdown(cmd.OutOrStdout(), resp.(*trading.PriceBreakdown))
				return nil
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&partial, "partial", false, "Buying only part of the available cargo")

	return cmd
}

func newPriceSellCommand() *cobra.Command {
	var (
		flags      tradeFlags
		settlement string
	)

	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Price a normal sale at a settlement",
		RunE: func(cmd *cobra.Command, args []string) error {
			haggle, err := flags.haggleOutcome()
			if err != nil {
				return err
			}
			return withRuntime(func(ctx context.Context, rt *runtime) error {
				resp, err := rt.mediator.Send(ctx, &tradingQueries.SalePriceQuery{Quote: appTrading.SaleQuote{
					SettlementName: settlement,
					CargoName:      flags.cargo,
					Quantity:       flags.quantity,
					Quality:        flags.quality,
					Haggle:         haggle,
				}})
				if err != nil {
					return err
				}
				printBreakdown(cmd.OutOrStdout(), resp.(*trading.PriceBreakdown))
				return nil
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&settlement, "settlement", "", "Settlement to sell at (required)")
	cmd.MarkFlagRequired("settlement")

	return cmd
}

func newPriceDesperateCommand() *cobra.Command {
	var (
		flags      tradeFlags
		settlement string
	)

	cmd := &cobra.Command{
		Use:   "desperate",
		Short: "Price a desperate sale at a Trade settlement",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime) error {
				resp, err := rt.mediator.Send(ctx, &tradingQueries.SpecialSaleQuery{
					SettlementName: settlement,
					CargoName:      flags.cargo,
					Quantity:       flags.quantity,
					Quality:        flags.quality,
				})
				if err != nil {
					return err
				}
				printOffer(cmd.OutOrStdout(), "Desperate sale", resp.(*trading.SpecialSaleOffer))
				return nil
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&settlement, "settlement", "", "Settlement to sell at (required)")
	cmd.MarkFlagRequired("settlement")

	return cmd
}

func newPriceRumorCommand() *cobra.Command {
	var (
		flags      tradeFlags
		rumor      rumorFlags
		settlement string
	)

	cmd := &cobra.Command{
		Use:   "rumor",
		Short: "Price a sale backed by a rumor",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime) error {
				resp, err := rt.mediator.Send(ctx, &tradingQueries.SpecialSaleQuery{
					SettlementName: settlement,
					CargoName:      flags.cargo,
					Quantity:       flags.quantity,
					Quality:        flags.quality,
					Rumor:          rumor.rumor(),
				})
				if err != nil {
					return err
				}
				printOffer(cmd.OutOrStdout(), "Rumor sale", resp.(*trading.SpecialSaleOffer))
				return nil
			})
		},
	}

	flags.register(cmd)
	rumor.register(cmd)
	cmd.Flags().StringVar(&settlement, "settlement", "", "Settlement to sell at (required)")
	cmd.MarkFlagRequired("settlement")
	cmd.MarkFlagRequired("multiplier")

	return cmd
}
