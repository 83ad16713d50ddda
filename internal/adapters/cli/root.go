package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath   string
	seasonFlag   string
	seedFlag     uint64
	actorFlag    string
	pipelineFlag bool
	verbose      bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trading",
		Short: "Trading CLI - Roll up cargo, prices and merchants for a trading session",
		Long: `Trading CLI runs the trading rules against a settlement and cargo dataset.

The season is remembered between runs in ~/.trading-engine/session.yaml.
The dataset is imported into the configured database on first use.

Examples:
  trading season set spring
  trading availability Ubersreik
  trading price buy --cargo Wine/Brandy --quantity 20 --haggle success
  trading price sell --settlement Altdorf --cargo Wool --quantity 30
  trading sell Kleindorf --cargo Grain --quantity 40 --actor wagon-1 --settle
  trading merchant Altdorf
  trading dataset import ./my-campaign.yaml`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&seasonFlag, "season", "",
		"Season for this run only (overrides the session season)")
	rootCmd.PersistentFlags().Uint64Var(&seedFlag, "seed", 0,
		"Seed for reproducible rolls (0 uses the configured seed or the clock)")
	rootCmd.PersistentFlags().StringVar(&actorFlag, "actor", "",
		"Actor whose purse and inventory are used (default: session actor)")
	rootCmd.PersistentFlags().BoolVar(&pipelineFlag, "pipeline", false,
		"Enable the plan-table pipeline for this run")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewSeasonCommand())
	rootCmd.AddCommand(NewSettlementsCommand())
	rootCmd.AddCommand(NewCargoCommand())
	rootCmd.AddCommand(NewAvailabilityCommand())
	rootCmd.AddCommand(NewPriceCommand())
	rootCmd.AddCommand(NewSellCommand())
	rootCmd.AddCommand(NewBuyCommand())
	rootCmd.AddCommand(NewActorCommand())
	rootCmd.AddCommand(NewMerchantCommand())
	rootCmd.AddCommand(NewDatasetCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
