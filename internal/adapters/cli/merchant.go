package cli

import (
	"context"

	"github.com/spf13/cobra"

	tradingQueries "github.com/andrescamacho/trading-engine-go/internal/application/trading/queries"
	"github.com/andrescamacho/trading-engine-go/internal/domain/merchant"
)

// NewMerchantCommand rolls a merchant for a settlement
func NewMerchantCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "merchant <settlement>",
		Short: "Generate a merchant for a settlement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime) error {
				resp, err := rt.mediator.Send(ctx, &tradingQueries.GenerateMerchantQuery{SettlementName: args[0]})
				if err != nil {
					return err
				}
				printMerchant(cmd.OutOrStdout(), resp.(*merchant.Merchant))
				return nil
			})
		},
	}
}
