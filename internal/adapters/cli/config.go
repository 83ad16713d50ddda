package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/trading-engine-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage trading engine configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (TRADE_* prefix)
2. Config file (config.yaml)
3. Default values

Session state (season, default actor) is stored in ~/.trading-engine/session.yaml

Examples:
  trading config show
  trading config set-actor wagon-1
  trading config clear-actor`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetActorCommand())
	cmd.AddCommand(newConfigClearActorCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			session, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create session handler: %w", err)
			}
			state, err := session.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load session: %v\n\n", err)
				state = &config.UserConfig{}
			}

			fmt.Fprintln(out, "Trading Engine Configuration")
			fmt.Fprintln(out, "============================")

			fmt.Fprintln(out, "Session:")
			fmt.Fprintf(out, "  Session file:     %s\n", session.GetConfigPath())
			fmt.Fprintf(out, "  Season:           %s\n", orUnset(state.Season))
			fmt.Fprintf(out, "  Default actor:    %s\n", orUnset(state.DefaultActor))

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
				fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)
			}

			fmt.Fprintln(out, "\nTrading:")
			fmt.Fprintf(out, "  Default season:   %s\n", orUnset(cfg.Trading.Season))
			fmt.Fprintf(out, "  Dataset:          %s\n", orDefault(cfg.Trading.DatasetPath, "(embedded)"))
			fmt.Fprintf(out, "  Resale cooldown:  %d days\n", cfg.Trading.ResaleCooldownDays)
			fmt.Fprintf(out, "  Plan pipeline:    %t\n", cfg.Trading.Pipeline.Enabled)
			fmt.Fprintf(out, "  Merchant skill:   base %d, +%d per wealth, ±%d, clamp %d-%d\n",
				cfg.Trading.Merchant.BaseSkill, cfg.Trading.Merchant.WealthModifier, cfg.Trading.Merchant.Variance,
				cfg.Trading.Merchant.MinSkill, cfg.Trading.Merchant.MaxSkill)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Fprintf(out, "  Textfile:         %s\n", cfg.Metrics.Textfile)
			}

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}
}

func newConfigSetActorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-actor <id>",
		Short: "Set the default actor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create session handler: %w", err)
			}
			if err := session.SetDefaultActor(args[0]); err != nil {
				return fmt.Errorf("failed to set default actor: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default actor set to %s\n", args[0])
			return nil
		},
	}
}

func newConfigClearActorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-actor",
		Short: "Clear the default actor",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create session handler: %w", err)
			}
			if err := session.SetDefaultActor(""); err != nil {
				return fmt.Errorf("failed to clear default actor: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Default actor cleared")
			return nil
		},
	}
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}

func orUnset(s string) string {
	return orDefault(s, "(not set)")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
