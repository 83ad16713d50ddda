package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	tradingCommands "github.com/andrescamacho/trading-engine-go/internal/application/trading/commands"
	tradingQueries "github.com/andrescamacho/trading-engine-go/internal/application/trading/queries"
)

// NewSeasonCommand creates the season command with subcommands
func NewSeasonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "season",
		Short: "Show or set the trading season",
		Long: `Show or set the trading season.

Prices, cargo types and village restrictions all depend on the season.
A season set here is remembered for later runs.

Examples:
  trading season show
  trading season set autumn`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current season and pipeline status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime) error {
				resp, err := rt.mediator.Send(ctx, &tradingQueries.EngineStatusQuery{})
				if err != nil {
					return err
				}
				status := resp.(*tradingQueries.EngineStatusResponse)
				out := cmd.OutOrStdout()
				if status.SeasonSet {
					fmt.Fprintf(out, "Season:   %s\n", status.Season.Title())
				} else {
					fmt.Fprintln(out, "Season:   (not set)")
				}
				fmt.Fprintf(out, "Pipeline: %s\n", status.Pipeline)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <season>",
		Short: "Set the season for this and later runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime) error {
				resp, err := rt.mediator.Send(ctx, &tradingCommands.SetSeasonCommand{Season: args[0]})
				if err != nil {
					return err
				}
				result := resp.(*tradingCommands.SetSeasonResponse)
				if err := rt.session.SetSeason(result.Season.String()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Season set to %s\n", result.Season.Title())
				return nil
			})
		},
	})

	return cmd
}
