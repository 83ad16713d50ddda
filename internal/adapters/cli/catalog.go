package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	tradingQueries "github.com/andrescamacho/trading-engine-go/internal/application/trading/queries"
)

// NewSettlementsCommand lists settlements
func NewSettlementsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "settlements",
		Short: "List known settlements",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime) error {
				resp, err := rt.mediator.Send(ctx, &tradingQueries.ListSettlementsQuery{})
				if err != nil {
					return err
				}
				w := newTable(cmd.OutOrStdout())
				fmt.Fprintln(w, "NAME\tREGION\tSIZE\tWEALTH\tPRODUCTION")
				for _, s := range resp.(*tradingQueries.ListSettlementsResponse).Settlements {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
						s.Name, s.Region, s.SizeLabel(), s.WealthLabel(), strings.Join(s.ProductionCategories, ", "))
				}
				return w.Flush()
			})
		},
	}
}

// NewCargoCommand lists cargo types with their price this season
func NewCargoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cargo",
		Short: "List cargo types and seasonal prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime) error {
				resp, err := rt.mediator.Send(ctx, &tradingQueries.ListCargoTypesQuery{})
				if err != nil {
					return err
				}
				list := resp.(*tradingQueries.ListCargoTypesResponse)
				w := newTable(cmd.OutOrStdout())
				header := "PRICE"
				if list.Season != "" {
					header = strings.ToUpper(list.Season.String()) + " PRICE"
				}
				fmt.Fprintf(w, "NAME\tCATEGORY\t%s\n", header)
				for _, c := range list.Cargo {
					price := "-"
					if !c.Price.IsZero() {
						price = money(c.Price)
					}
					fmt.Fprintf(w, "%s\t%s\t%s\n", c.Cargo.Name, c.Cargo.Category, price)
				}
				return w.Flush()
			})
		},
	}
}
