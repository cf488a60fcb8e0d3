// tdidash - terminal dashboard for the TDI trading bot backend
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tdibot/dashboard/pkg/api"
	"github.com/tdibot/dashboard/pkg/config"
	"github.com/tdibot/dashboard/pkg/logging"
	"github.com/tdibot/dashboard/pkg/pipeline"
	"github.com/tdibot/dashboard/pkg/symbols"
	"github.com/tdibot/dashboard/pkg/ui"
)

var (
	version = "0.1.0"
	apiURL  string
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tdidash",
		Short: "Terminal dashboard for the TDI trading bot",
		Long: `tdidash is a terminal dashboard for the Traders Dynamic Index trading
bot backend: live performance charts, symbol selection and bot configuration.`,
		RunE: runDashboard,
	}

	// Flags
	rootCmd.PersistentFlags().StringVarP(&apiURL, "api-url", "a", "", "Backend address (defaults to config / TDIDASH_API_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	// Subcommands
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(symbolsCmd())
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig builds the effective config with the --api-url flag applied.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if result := cfg.Validate(); !result.IsValid() {
		return nil, &result.Errors[0]
	}
	return cfg, nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file.
	logPath := cfg.LogFile
	if logPath == "" {
		logPath, err = config.DefaultLogPath()
		if err != nil {
			return err
		}
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log, closer, err := logging.NewFile(logPath, level)
	if err != nil {
		return err
	}
	defer closer.Close()

	log.Info().Str("version", version).Str("backend", cfg.APIURL).Msg("starting dashboard")

	model := ui.NewModel(api.NewClient(cfg.APIURL), cfg, log)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tdidash version %s\n", version)
		},
	}
}

func symbolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols",
		Short: "Manage the traded symbol selection",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List selected and available symbols",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newManager(cmd.Context())
			if err != nil {
				return err
			}
			if query, _ := cmd.Flags().GetString("filter"); query != "" {
				mgr.Filter(query)
			}

			fmt.Println("Selected:")
			for _, sym := range mgr.Selected() {
				fmt.Printf("  %s\n", sym)
			}
			fmt.Println("Available:")
			for _, sym := range mgr.Available() {
				fmt.Printf("  %s\n", sym)
			}
			return nil
		},
	}
	listCmd.Flags().StringP("filter", "f", "", "Substring filter for the available list")

	selectCmd := &cobra.Command{
		Use:   "select <symbol>...",
		Short: "Add symbols to the traded set and persist it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mgr, err := newManager(ctx)
			if err != nil {
				return err
			}
			for _, sym := range args {
				if !mgr.Select(strings.ToUpper(sym)) && !mgr.IsSelected(strings.ToUpper(sym)) {
					return fmt.Errorf("symbol not available: %s", sym)
				}
			}
			if err := mgr.PersistSelected(ctx); err != nil {
				return err
			}
			fmt.Printf("✅ Saved %d trading symbols\n", len(mgr.Selected()))
			return nil
		},
	}

	deselectCmd := &cobra.Command{
		Use:   "deselect <symbol>...",
		Short: "Remove symbols from the traded set and persist it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mgr, err := newManager(ctx)
			if err != nil {
				return err
			}
			for _, sym := range args {
				mgr.Deselect(strings.ToUpper(sym))
			}
			if err := mgr.PersistSelected(ctx); err != nil {
				return err
			}
			fmt.Printf("✅ Saved %d trading symbols\n", len(mgr.Selected()))
			return nil
		},
	}

	cmd.AddCommand(listCmd)
	cmd.AddCommand(selectCmd)
	cmd.AddCommand(deselectCmd)

	return cmd
}

// newManager loads the selection and universe for the headless commands,
// selection first so the available list stays disjoint from it.
func newManager(ctx context.Context) (*symbols.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	mgr := symbols.NewManager(api.NewClient(cfg.APIURL))
	if err := mgr.LoadSelected(ctx); err != nil {
		return nil, err
	}
	if err := mgr.LoadAvailable(ctx); err != nil {
		return nil, err
	}
	return mgr, nil
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <symbol>",
		Short: "Trigger a single strategy pass for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := logging.NewConsole(verbose)
			client := api.NewClient(cfg.APIURL)
			symbol := strings.ToUpper(args[0])

			log.Debug().Str("backend", cfg.APIURL).Str("symbol", symbol).Msg("triggering strategy pass")
			action, err := client.RunStrategy(cmd.Context(), symbol)
			if err != nil {
				if api.Classify(err) == api.ClassConnectivity {
					return fmt.Errorf("%w\nThe backend's exchange client is not ready; check the API key configuration", err)
				}
				return err
			}
			fmt.Printf("✅ %s: %s\n", symbol, action)

			payload, err := client.Performance(cmd.Context(), symbol)
			if err != nil {
				return nil // the pass itself succeeded
			}
			wins, rate := pipeline.RecomputeWinRate(payload.Trades)
			fmt.Printf("   %d trades, %d wins (%.1f%%)\n", len(payload.Trades), wins, rate*100)
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the backend configuration",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the backend configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			m, err := api.NewClient(cfg.APIURL).Config(cmd.Context())
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("%-32s %s\n", k, m[k])
			}
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one backend configuration value and save",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client := api.NewClient(cfg.APIURL)
			ctx := cmd.Context()

			m, err := client.Config(ctx)
			if err != nil {
				return err
			}
			key, value := args[0], args[1]
			if _, ok := m[key]; !ok {
				return fmt.Errorf("unknown configuration key: %s", key)
			}
			if api.IsBoolKey(key) {
				m.SetBool(key, strings.EqualFold(value, "true"))
			} else {
				m[key] = value
			}
			if err := client.SaveConfig(ctx, m); err != nil {
				return err
			}
			fmt.Printf("✅ %s = %s\n", key, m[key])
			return nil
		},
	}

	cmd.AddCommand(showCmd)
	cmd.AddCommand(setCmd)

	return cmd
}
