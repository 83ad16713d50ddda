package cli

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/trading-engine-go/internal/application/common"
)

// NewActorCommand creates the actor command with subcommands
func NewActorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actor",
		Short: "Manage purses and cargo holds",
		Long: `Manage actors: the wagons, boats or characters that hold a purse and cargo.

Examples:
  trading actor create wagon-1 --name "Gunther's wagon" --purse 250
  trading actor show wagon-1
  trading actor use wagon-1`,
	}

	cmd.AddCommand(newActorCreateCommand())
	cmd.AddCommand(newActorShowCommand())
	cmd.AddCommand(newActorUseCommand())

	return cmd
}

func newActorCreateCommand() *cobra.Command {
	var (
		name  string
		purse string
	)

	cmd := &cobra.Command{
		Use:   "create <id>",
		Short: "Create an actor with an opening purse",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opening, err := decimal.NewFromString(purse)
			if err != nil {
				return fmt.Errorf("invalid purse %q: %w", purse, err)
			}
			return withRuntime(func(ctx context.Context, rt *runtime) error {
				actor, err := rt.ledger.EnsureActor(ctx, args[0], orDefault(name, args[0]), opening)
				if err != nil {
					return err
				}
				common.LoggerFromContext(ctx).Log(common.LevelInfo, "Actor ready", map[string]interface{}{
					"actor": actor.ID,
					"purse": actor.Purse.StringFixed(2),
				})
				fmt.Fprintf(cmd.OutOrStdout(), "Actor %s (%s) holds %s\n", actor.ID, actor.Name, money(actor.Purse))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&purse, "purse", "0", "Opening purse")

	return cmd
}

func newActorShowCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show an actor's purse, cargo and recent transactions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime) error {
				id := ""
				if len(args) == 1 {
					id = args[0]
				} else {
					var err error
					if id, err = rt.actorID(); err != nil {
						return err
					}
				}

				actor, err := rt.ledger.FindActor(ctx, id)
				if err != nil {
					return err
				}
				lots, err := rt.ledger.Inventory(ctx, id)
				if err != nil {
					return err
				}
				entries, err := rt.ledger.Transactions(ctx, id, limit)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%s)\n", actor.Name, actor.ID)
				fmt.Fprintf(out, "Purse: %s\n\n", money(actor.Purse))

				if len(lots) == 0 {
					fmt.Fprintln(out, "Cargo hold is empty.")
				} else {
					w := newTable(out)
					fmt.Fprintln(w, "CARGO\tEP\tQUALITY\tPRICE/UNIT\tBOUGHT AT\tACQUIRED")
					for _, lot := range lots {
						fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n", lot.CargoName, lot.Quantity, lot.Quality,
							money(lot.PricePerUnit), lot.SettlementName, lot.AcquiredAt.Format("2006-01-02"))
					}
					if err := w.Flush(); err != nil {
						return err
					}
				}

				if len(entries) == 0 {
					return nil
				}
				fmt.Fprintln(out)
				w := newTable(out)
				fmt.Fprintln(w, "WHEN\tKIND\tCARGO\tEP\tAMOUNT\tBALANCE")
				for _, e := range entries {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n", e.Timestamp.Format("2006-01-02 15:04"), e.Kind,
						orDefault(e.CargoName, "-"), e.Quantity, money(e.Amount), money(e.BalanceAfter))
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of transactions to show (0 for all)")

	return cmd
}

func newActorUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Make an existing actor the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime) error {
				if _, err := rt.ledger.FindActor(ctx, args[0]); err != nil {
					return err
				}
				if err := rt.session.SetDefaultActor(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Default actor set to %s\n", args[0])
				return nil
			})
		},
	}
}
