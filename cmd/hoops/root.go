// ABOUTME: Root Cobra command for hoops CLI.
// ABOUTME: Loads config, builds the logger and opens storage in PersistentPre/PostRunE.
package main

import (
	"fmt"
	"time"

	"github.com/harperreed/hoops/internal/config"
	"github.com/harperreed/hoops/internal/logging"
	"github.com/harperreed/hoops/internal/storage"
	"github.com/harperreed/hoops/internal/tracker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// skipStorage marks commands that run without opening the record store.
const skipStorage = "skip-storage"

var (
	configPath  string
	backendFlag string
	dataDirFlag string
	logLevel    string

	cfg    *config.Config
	logger *zap.Logger
	repo   storage.Repository
	svc    *tracker.Service

	// nowFunc is the clock for "today"; tests pin it.
	nowFunc = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "hoops",
	Short: "Basketball training tracker",
	Long: `Hoops is a CLI tool for tracking basketball training.

WHAT IT TRACKS:

  Sessions       shooting practice with made/missed per shot type
                 (free throw, 3-pointer, mid-range, layup, post)
  Pickup games   result, location and box score
  Official games scheduled league games, final scores and stats

QUICK START:

  $ hoops session add --ft 8/10 --three 4/10       # Log today's shooting
  $ hoops drills                                   # Today's drill plan
  $ hoops stats                                    # Streak and accuracy
  $ hoops progress                                 # Accuracy trend and weekly volume

GAMES:

  $ hoops pickup add --result win --pts 12          # Log a pickup game
  $ hoops game add Hawks --date 2024-06-20 --time 19:30
  $ hoops game import league.ics                    # Import a league schedule

STORAGE:

  Backends: sqlite (default), postgres, badger, charm.
  Configure in ~/.config/hoops/config.json or with HOOPS_* env vars:

  {
    "backend": "sqlite",
    "data_dir": "~/.local/share/hoops"
  }

MCP INTEGRATION:

  Run 'hoops mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Annotations[skipStorage] == "true" {
			return nil
		}

		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}

		logger, err = logging.New(cfg.Log)
		if err != nil {
			return err
		}

		repo, err = cfg.OpenStorage(cmd.Context(), logger)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		logger.Debug("opened storage", zap.String("backend", cfg.GetBackend()))

		svc = tracker.New(repo, logger, tracker.WithClock(nowFunc))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStorage()
	},
}

// Execute runs the root command.
func Execute() error {
	defer closeStorage()
	return rootCmd.Execute()
}

// loadConfig reads the config file and applies the persistent flags.
func loadConfig() (*config.Config, error) {
	c, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if backendFlag != "" {
		if !config.IsValidBackend(backendFlag) {
			return nil, fmt.Errorf("unknown backend: %s", backendFlag)
		}
		c.Backend = backendFlag
	}
	if dataDirFlag != "" {
		c.DataDir = dataDirFlag
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	return c, nil
}

func closeStorage() error {
	if logger != nil {
		_ = logger.Sync()
	}
	if repo == nil {
		return nil
	}
	err := repo.Close()
	repo = nil
	svc = nil
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/hoops/config.json)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend: sqlite, postgres, badger, charm")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default ~/.local/share/hoops)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}
