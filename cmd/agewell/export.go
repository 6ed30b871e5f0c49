// ABOUTME: CLI commands for exporting and importing wellness data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/harperreed/agewell/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export wellness data",
	Long: `Export habits, completions, cycles, and the profile.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Markdown tables (for sharing with a clinician)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include entries since this date (markdown only, YYYY-MM-DD)

EXAMPLES:

  agewell export json -o backup.json
  agewell export yaml
  agewell export markdown --since 2024-01-01`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(repo)
		case "yaml":
			data, err = storage.ExportYAML(repo)
		case "markdown":
			var since *time.Time
			if exportSince != "" {
				t, err := time.Parse("2006-01-02", exportSince)
				if err != nil {
					return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
				}
				since = &t
			}
			var md string
			md, err = storage.ExportMarkdown(repo, since)
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			success(cmd.OutOrStdout(), "Exported to %s", exportOutput)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import wellness data from JSON",
	Long: `Import wellness data from a JSON backup file.

Duplicate records (same ID) cause an error.

EXAMPLES:

  agewell import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		if err := storage.ImportJSON(repo, data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		success(cmd.OutOrStdout(), "Imported from %s", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include data since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
