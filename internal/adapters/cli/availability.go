package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	tradingCommands "github.com/andrescamacho/trading-engine-go/internal/application/trading/commands"
	tradingQueries "github.com/andrescamacho/trading-engine-go/internal/application/trading/queries"
	"github.com/andrescamacho/trading-engine-go/internal/application/trading/services"
)

// NewAvailabilityCommand rolls cargo availability, type and size at a settlement
func NewAvailabilityCommand() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "availability <settlement>",
		Short: "Roll for cargo on offer at a settlement",
		Long: `Roll for cargo on offer at a settlement.

Rolls availability first; when cargo is available, lists the cargo types and
rolls the cargo size. With --pipeline the plan table is consulted first.

Examples:
  trading availability Ubersreik
  trading availability Altdorf --pipeline --refresh`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime) error {
				return runAvailability(ctx, cmd, rt, args[0], refresh)
			})
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Discard any cached plan before rolling")

	return cmd
}

func runAvailability(ctx context.Context, cmd *cobra.Command, rt *runtime, settlement string, refresh bool) error {
	out := cmd.OutOrStdout()

	if refresh {
		resp, err := rt.mediator.Send(ctx, &tradingCommands.RefreshPlanCommand{SettlementName: settlement})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Plan pipeline: %s\n", resp.(*tradingCommands.RefreshPlanResponse).Status)
	}

	resp, err := rt.mediator.Send(ctx, &tradingQueries.CheckAvailabilityQuery{SettlementName: settlement})
	if err != nil {
		return err
	}
	avail := resp.(*services.AvailabilityResult)
	source := "rolled"
	if avail.FromPlan {
		source = "from plan"
	}
	fmt.Fprintf(out, "%s, %s: chance %d%%, roll %d (%s)\n", avail.Settlement, avail.Season.Title(), avail.Chance, avail.Roll, source)
	if !avail.Available {
		fmt.Fprintln(out, "No cargo available.")
		return nil
	}

	resp, err = rt.mediator.Send(ctx, &tradingQueries.DetermineCargoTypesQuery{SettlementName: settlement})
	if err != nil {
		return err
	}
	types := resp.(*services.CargoTypesResult)
	fmt.Fprintf(out, "Cargo on offer: %s\n", strings.Join(types.CargoTypes, ", "))

	resp, err = rt.mediator.Send(ctx, &tradingQueries.CalculateCargoSizeQuery{SettlementName: settlement})
	if err != nil {
		return err
	}
	size := resp.(*services.CargoSizeResult)
	fmt.Fprintf(out, "Cargo size: %d EP (base %d x size %d", size.TotalSize, size.BaseMultiplier, size.SizeMultiplier)
	if size.TradeBonus {
		fmt.Fprint(out, ", trade bonus")
	}
	fmt.Fprintln(out, ")")
	return nil
}
