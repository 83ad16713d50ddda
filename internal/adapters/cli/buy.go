package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	appTrading "github.com/andrescamacho/trading-engine-go/internal/application/trading"
	tradingCommands "github.com/andrescamacho/trading-engine-go/internal/application/trading/commands"
	tradingQueries "github.com/andrescamacho/trading-engine-go/internal/application/trading/queries"
	"github.com/andrescamacho/trading-engine-go/internal/application/trading/services"
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

// NewBuyCommand prices a purchase and records it in the actor's ledger
func NewBuyCommand() *cobra.Command {
	var (
		flags   tradeFlags
		partial bool
		check   bool
	)

	cmd := &cobra.Command{
		Use:   "buy <settlement>",
		Short: "Buy cargo at a settlement",
		Long: `Buy cargo at a settlement.

Prices the purchase in the current season, deducts the total from the actor's
purse and stores the cargo lot with the settlement it was bought at.

By default the purchase records a deal already struck at the table, so no
availability is rolled. With --check the command first rolls availability and
cargo size at the settlement, and buys nothing when no cargo is on offer or
the quantity exceeds the cargo size.

Examples:
  trading buy Ubersreik --cargo Metal --quantity 10 --actor wagon-1
  trading buy Grunburg --cargo Wine/Brandy --quantity 5 --quality fine --haggle success
  trading buy Altdorf --cargo Wool --quantity 20 --check`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			haggle, err := flags.haggleOutcome()
			if err != nil {
				return err
			}
			return withRuntime(func(ctx context.Context, rt *runtime) error {
				actorID, err := rt.actorID()
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if check {
					onOffer, err := checkCargoOnOffer(ctx, out, rt, args[0], flags.quantity)
					if err != nil || !onOffer {
						return err
					}
				}

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
				breakdown := resp.(*trading.PriceBreakdown)
				printBreakdown(out, breakdown)

				resp, err = rt.mediator.Send(ctx, &tradingCommands.SettlePurchaseCommand{
					ActorID:        actorID,
					SettlementName: args[0],
					Breakdown:      breakdown,
				})
				if err != nil {
					return err
				}
				settled := resp.(*tradingCommands.SettlementResponse)
				fmt.Fprintf(out, "Settled: %s paid %s for %d EP of %s\n",
					settled.ActorID, money(settled.Amount), settled.Quantity, settled.CargoName)
				return nil
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&partial, "partial", false, "Buying only part of the available cargo")
	cmd.Flags().BoolVar(&check, "check", false, "Roll availability and cargo size before buying")

	return cmd
}

// checkCargoOnOffer rolls availability then cargo size; it reports false when
// nothing is on offer and fails when the quantity exceeds the cargo size
func checkCargoOnOffer(ctx context.Context, out io.Writer, rt *runtime, settlement string, quantity int) (bool, error) {
	resp, err := rt.mediator.Send(ctx, &tradingQueries.CheckAvailabilityQuery{SettlementName: settlement})
	if err != nil {
		return false, err
	}
	avail := resp.(*services.AvailabilityResult)
	fmt.Fprintf(out, "%s, %s: chance %d%%, roll %d\n", avail.Settlement, avail.Season.Title(), avail.Chance, avail.Roll)
	if !avail.Available {
		fmt.Fprintln(out, "No cargo available. Nothing bought.")
		return false, nil
	}

	resp, err = rt.mediator.Send(ctx, &tradingQueries.CalculateCargoSizeQuery{SettlementName: settlement})
	if err != nil {
		return false, err
	}
	size := resp.(*services.CargoSizeResult)
	fmt.Fprintf(out, "Cargo size: %d EP\n", size.TotalSize)
	if quantity > size.TotalSize {
		return false, shared.NewValidationError("quantity",
			fmt.Sprintf("only %d EP on offer at %s, cannot buy %d", size.TotalSize, avail.Settlement, quantity))
	}
	return true, nil
}
