// ABOUTME: CLI commands for exporting and importing training data.
// ABOUTME: Supports JSON, YAML, Markdown, XLSX and iCalendar export formats.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/hoops/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
	exportTZ     string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export training data",
	Long: `Export training data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Markdown tables (for documentation/sharing)
  xlsx       Excel workbook with sessions, shots and games sheets (requires -o)
  ics        iCalendar feed of official and pickup games

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include data since this date (YYYY-MM-DD)
  --tz           Time zone for game times in ics export (default local)

EXAMPLES:

  hoops export json -o backup.json
  hoops export markdown --since 2024-06-01
  hoops export xlsx -o hoops.xlsx
  hoops export ics -o games.ics`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown", "xlsx", "ics"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		data, err := repo.GetAllData(cmd.Context())
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		if exportSince != "" {
			since, err := parseOptionalDate(exportSince)
			if err != nil {
				return err
			}
			data = data.Since(*since)
		}

		var out []byte
		switch format {
		case "json":
			out, err = storage.ExportJSON(data)
		case "yaml":
			out, err = storage.ExportYAML(data)
		case "markdown", "md":
			out = []byte(storage.ExportMarkdown(data))
		case "xlsx":
			if exportOutput == "" {
				return fmt.Errorf("xlsx export needs --output")
			}
			out, err = storage.ExportXLSX(data)
		case "ics":
			loc := time.Local
			if exportTZ != "" {
				loc, err = time.LoadLocation(exportTZ)
				if err != nil {
					return fmt.Errorf("invalid time zone: %s", exportTZ)
				}
			}
			out = []byte(storage.ExportICS(data, loc))
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, markdown, xlsx, or ics)", format)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, out, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(out))
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import training data from JSON",
	Long: `Import training data from a JSON backup file.

This imports sessions, shot logs and games from a previously exported JSON
file. Duplicate entries (same ID) will cause an error.

EXAMPLES:

  hoops import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		raw, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		data, err := storage.ImportJSON(cmd.Context(), repo, raw)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		counts := storage.CountData(data)
		color.Green("✓ Imported from %s", filename)
		fmt.Printf("  Sessions:       %d (%d shot logs)\n", counts.Sessions, counts.ShotLogs)
		fmt.Printf("  Pickup games:   %d\n", counts.PickupGames)
		fmt.Printf("  Official games: %d\n", counts.OfficialGames)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include data since date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTZ, "tz", "", "time zone for ics game times")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
