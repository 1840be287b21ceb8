// ABOUTME: CLI command for migrating data between storage backends.
// ABOUTME: Copies sessions, shot logs and games from the active backend to another.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/hoops/internal/config"
	"github.com/harperreed/hoops/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate data to another storage backend",
	Long: `Copy all training data from the active backend to another backend.

The source is the backend selected by config (or --backend). The destination
is opened with the same config settings, so a postgres destination needs
postgres_dsn and a charm destination needs charm_host.

IMPORTANT:

  - The destination must be empty unless --force is given
  - Existing records with the same ID in the destination cause an error
  - Run with --dry-run first to see what would be migrated

USAGE:

  hoops migrate --to badger --dry-run   # Preview what would be migrated
  hoops migrate --to postgres           # Perform the migration

AFTER MIGRATION:

  Switch backends in ~/.config/hoops/config.json:
    { "backend": "postgres" }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		to := strings.ToLower(migrateTo)
		if !config.IsValidBackend(to) {
			return fmt.Errorf("unknown backend: %s (want one of %s)", migrateTo, strings.Join(config.Backends, ", "))
		}
		if to == cfg.GetBackend() {
			return fmt.Errorf("source and destination are both %s", to)
		}

		data, err := repo.GetAllData(ctx)
		if err != nil {
			return fmt.Errorf("read source: %w", err)
		}

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Println()
			counts := storage.CountData(data)
			fmt.Printf("Would migrate from %s to %s:\n", cfg.GetBackend(), to)
			printMigrateSummary(counts)
			return nil
		}

		dst, err := cfg.OpenBackend(ctx, to, logger)
		if err != nil {
			return fmt.Errorf("open %s: %w", to, err)
		}
		defer dst.Close()

		empty, err := storage.IsEmpty(ctx, dst)
		if err != nil {
			return fmt.Errorf("check destination: %w", err)
		}
		if !empty && !migrateForce {
			return fmt.Errorf("destination %s already has data (use --force to merge)", to)
		}

		summary, err := storage.MigrateData(ctx, repo, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("migrated data",
			zap.String("from", cfg.GetBackend()),
			zap.String("to", to),
			zap.Int("records", summary.Total()))

		color.Green("✓ Migrated %d records from %s to %s", summary.Total(), cfg.GetBackend(), to)
		printMigrateSummary(summary)
		return nil
	},
}

func printMigrateSummary(s *storage.MigrateSummary) {
	fmt.Printf("  Sessions:       %d\n", s.Sessions)
	fmt.Printf("  Shot logs:      %d\n", s.ShotLogs)
	fmt.Printf("  Pickup games:   %d\n", s.PickupGames)
	fmt.Printf("  Official games: %d\n", s.OfficialGames)
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend: sqlite, postgres, badger, charm")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "migrate even if the destination has data")
	_ = migrateCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(migrateCmd)
}
