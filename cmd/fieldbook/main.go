package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fieldbook/cmd/fieldbook/app"
	"fieldbook/internal/catalog"
	"fieldbook/internal/config"
	"fieldbook/internal/engine"
	"fieldbook/internal/logging"
	"fieldbook/internal/store"
	"fieldbook/internal/types"
)

const version = "0.3.0"

var (
	// Global flags
	dataDir     string
	catalogFlag string
	verbose     bool

	// Logger for non-interactive commands; the TUI owns the terminal and
	// logs to category files instead.
	logger *zap.Logger
)

// rootCmd launches the interactive checklist when run without arguments.
var rootCmd = &cobra.Command{
	Use:   "fieldbook",
	Short: "fieldbook - a terminal bird checklist",
	Long: `fieldbook is a single-user terminal checklist for tracking bird species
observations against a regional species list.

Mark species as seen or target, filter by name, family, habitat, or month,
log observation sessions, and chase a 100-species challenge with
deterministic daily picks.

Run without arguments to start the interactive interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for interactive mode (it has its own UI)
		if cmd.Name() == "fieldbook" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// statsCmd prints aggregate completion statistics without entering the TUI.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print completion statistics",
	RunE:  runStats,
}

// catalogCmd validates and summarizes the configured catalog source.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate the species catalog source",
	RunE:  runCatalog,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fieldbook version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fieldbook %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.fieldbook)")
	rootCmd.PersistentFlags().StringVar(&catalogFlag, "catalog", "", "catalog source: file path or URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves config from file, environment, and flags, in
// ascending precedence.
func loadConfig() (*config.Config, error) {
	dir := dataDir
	if dir == "" {
		dir = config.DefaultDataDir()
	}
	cfg, err := config.Load(config.ConfigPath(dir))
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if catalogFlag != "" {
		cfg.Catalog.Source = catalogFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runInteractive() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := logging.Initialize(cfg.DataDir, logging.Options{
		DebugMode:  cfg.Logging.DebugMode,
		Level:      cfg.Logging.Level,
		Categories: cfg.Logging.Categories,
	}); err != nil {
		// Logging is an observability aid, not a prerequisite.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	defer logging.Close()

	kv, err := store.OpenKV(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("failed to open data store: %w", err)
	}
	defer kv.Close()

	m := app.New(app.Deps{
		Config:    cfg,
		Progress:  store.NewProgressStore(kv),
		Logs:      store.NewLogStore(kv),
		Challenge: store.NewChallengeStore(kv),
	})
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interface error: %w", err)
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	species := catalog.Load(context.Background(), cfg.Catalog.Source)
	logger.Debug("catalog loaded", zap.Int("species", len(species)))

	kv, err := store.OpenKV(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("failed to open data store: %w", err)
	}
	defer kv.Close()

	progress := store.NewProgressStore(kv)
	logs := store.NewLogStore(kv)
	challenge := store.NewChallengeStore(kv)

	stats := engine.ComputeStats(species, progress.All())
	fmt.Printf("Species:   %d seen / %d total (%d%%)\n", stats.Seen, stats.Total, stats.Pct)
	fmt.Printf("Targets:   %d\n", stats.Targets)
	fmt.Printf("Sessions:  %d logged\n", logs.Len())

	state := challenge.State()
	if state.Active {
		fmt.Printf("Challenge: %d/%d (%d%%)\n", state.Count(), types.ChallengeCap, engine.ChallengePct(&state))
	} else {
		fmt.Println("Challenge: not running")
	}
	return nil
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	species := catalog.Load(context.Background(), cfg.Catalog.Source)
	logger.Info("catalog loaded",
		zap.String("source", cfg.Catalog.Source),
		zap.Int("species", len(species)))

	fmt.Printf("Source:  %s\n", cfg.Catalog.Source)
	fmt.Printf("Species: %d\n", len(species))
	for i, sp := range species {
		if i >= 10 {
			fmt.Printf("  … %d more\n", len(species)-i)
			break
		}
		fmt.Printf("  %-28s %s\n", sp.ID, sp.CommonName)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
