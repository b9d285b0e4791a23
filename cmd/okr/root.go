package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nhle/okr-dashboard/internal/app"
	"github.com/nhle/okr-dashboard/internal/model"
	"github.com/nhle/okr-dashboard/internal/okr"
	"github.com/nhle/okr-dashboard/internal/store"
	"github.com/nhle/okr-dashboard/internal/theme"
)

var (
	cfgPath   string
	dbPath    string
	ephemeral bool
	verbose   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "okr",
	Short: "A terminal OKR dashboard",
	Long: `okr tracks objectives and their key results in the terminal.
Progress percentages and the 7-day trend are recomputed from current
state on every redraw; everything persists to a local snapshot slot.`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the snapshot database (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep everything in memory, persist nothing")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	logger := buildLogger()
	defer logger.Sync()

	if cfgPath == "" {
		cfgPath = model.DefaultConfigPath()
	}
	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	// Materialize the defaults on first run so users have a file to edit.
	if _, statErr := os.Stat(cfgPath); os.IsNotExist(statErr) {
		if err := model.SaveConfig(cfgPath, cfg); err != nil {
			logger.Warn("failed to write default config", zap.Error(err))
		}
	}

	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}
	if err := theme.Apply(cfg.Display.Theme); err != nil {
		return err
	}

	var st store.Store
	if ephemeral {
		st = store.NewMemoryStore()
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
		st, err = store.NewSQLiteStore(cfg.Storage.Path)
		if err != nil {
			return fmt.Errorf("opening snapshot store: %w", err)
		}
	}
	defer st.Close()

	repo := okr.New(st, logger)
	repo.Load(cmd.Context())

	p := tea.NewProgram(app.New(repo, logger, cfg.Display), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}

	// Final flush; each mutation already persisted during the session.
	repo.Save(context.Background())
	return nil
}

// buildLogger writes structured logs to a file next to the config:
// stderr belongs to the alt-screen UI while the program runs.
func buildLogger() *zap.Logger {
	dir := filepath.Dir(model.DefaultConfigPath())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zap.NewNop()
	}

	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logPath := filepath.Join(dir, "okr.log")
	config.OutputPaths = []string{logPath}
	config.ErrorOutputPaths = []string{logPath}

	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
