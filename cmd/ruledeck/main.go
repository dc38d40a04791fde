package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/willibrandon/ruledeck/internal/app"
	"github.com/willibrandon/ruledeck/internal/config"
	"github.com/willibrandon/ruledeck/internal/grafana"
	"github.com/willibrandon/ruledeck/internal/logger"
)

var (
	// Version info (set by ldflags)
	version = "dev"

	// Flags
	configPath   string
	debug        bool
	initialState string
	jsonOutput   bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ruledeck",
		Short: "Terminal alert rule list for Grafana",
		Long: `ruledeck shows dashboard alert rules in the terminal, lets you filter them
by state and pause or resume them.

Rules come from a Grafana server (source: grafana) or from a local SQLite
database seeded with 'ruledeck import' (source: sqlite).

Commands:
  ruledeck                      Start the interactive rule list
  ruledeck list [--state S]     Print rules
  ruledeck pause <id>           Pause a rule
  ruledeck resume <id>          Resume a rule
  ruledeck import <file>        Load rules from a YAML seed file
  ruledeck history <id>         Show pause/resume history of a rule`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/ruledeck/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().StringVar(&initialState, "state", "", "initial state filter (all, ok, not_ok, alerting, no_data, paused)")

	rootCmd.AddCommand(
		newListCmd(),
		newPauseCmd(),
		newResumeCmd(),
		newImportCmd(),
		newHistoryCmd(),
	)
	return rootCmd
}

// loadConfig loads the configuration and starts the logger.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfigFromPath(configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Debug = true
	}

	logLevel := logger.LevelInfo
	if cfg.Debug {
		logLevel = logger.LevelDebug
	}
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = logger.DefaultLogPath()
	}
	logger.InitLogger(logLevel, logFile)
	logger.Debug("ruledeck starting", "version", version, "config", configPath, "source", cfg.Source)
	return cfg, nil
}

// runTUI starts the interactive rule list.
func runTUI() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal; use 'ruledeck list' for non-interactive output")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Close()
	grafana.Version = version

	model, err := app.New(cfg, app.Options{InitialState: initialState})
	if err != nil {
		return fmt.Errorf("%s", app.FormatSourceError(err))
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	finalModel, err := p.Run()

	// Cleanup
	if m, ok := finalModel.(app.Model); ok {
		m.Cleanup()
	} else if m, ok := finalModel.(*app.Model); ok {
		m.Cleanup()
	} else {
		model.Cleanup()
	}

	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
