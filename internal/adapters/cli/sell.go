package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	appTrading "github.com/andrescamacho/trading-engine-go/internal/application/trading"
	tradingCommands "github.com/andrescamacho/trading-engine-go/internal/application/trading/commands"
	"github.com/andrescamacho/trading-engine-go/internal/application/trading/services"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
)

// NewSellCommand runs the selling workflow at a settlement
func NewSellCommand() *cobra.Command {
	var (
		flags      tradeFlags
		rumor      rumorFlags
		settlement string
		saleType   string
		settle     bool
	)

	cmd := &cobra.Command{
		Use:   "sell <settlement>",
		Short: "Try to sell cargo at a settlement",
		Long: `Try to sell cargo at a settlement.

Runs the full selling workflow: resale restriction, village limits, the buyer
search (or a desperate or rumor offer) and pricing. With an actor the last
purchase of this cargo is checked against the resale cooldown, and --settle
moves the cargo and the proceeds through the ledger.

Examples:
  trading sell Altdorf --cargo Wool --quantity 20
  trading sell Ubersreik --cargo Metal --quantity 10 --type desperate
  trading sell Altdorf --cargo Wool --quantity 10 --type rumor --multiplier 1.5
  trading sell Altdorf --cargo Wool --quantity 20 --actor wagon-1 --settle`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settlement = args[0]
			haggle, err := flags.haggleOutcome()
			if err != nil {
				return err
			}
			return withRuntime(func(ctx context.Context, rt *runtime) error {
				order := appTrading.SellOrder{
					SettlementName: settlement,
					CargoName:      flags.cargo,
					Quantity:       flags.quantity,
					Quality:        flags.quality,
					SaleType:       saleType,
					Haggle:         haggle,
				}
				if rumor.set() {
					order.Rumor = rumor.rumor()
				}

				var actorID string
				if settle || actorFlag != "" {
					actorID, err = rt.actorID()
					if err != nil {
						return err
					}
					order.PurchaseHistory, err = rt.ledger.LatestPurchase(ctx, actorID, flags.cargo)
					if err != nil {
						return err
					}
				}

				resp, err := rt.mediator.Send(ctx, &tradingCommands.SellCargoCommand{Order: order})
				if err != nil {
					return err
				}
				result := resp.(*services.SellResult)
				out := cmd.OutOrStdout()
				printSellResult(out, result)

				if !settle || !result.Success {
					return nil
				}
				resp, err = rt.mediator.Send(ctx, &tradingCommands.SettleSaleCommand{ActorID: actorID, Result: result})
				if err != nil {
					return err
				}
				settled := resp.(*tradingCommands.SettlementResponse)
				fmt.Fprintf(out, "Settled: %s received %s for %d EP of %s\n",
					settled.ActorID, money(settled.Amount), settled.Quantity, settled.CargoName)
				return nil
			})
		},
	}

	flags.register(cmd)
	rumor.register(cmd)
	cmd.Flags().StringVar(&saleType, "type", string(trading.SaleTypeNormal), "Sale type: normal, desperate or rumor")
	cmd.Flags().BoolVar(&settle, "settle", false, "Record the sale in the actor's ledger")

	return cmd
}
