// ABOUTME: CLI command for moving data between storage backends.
// ABOUTME: Copies the profile, habits, completions, and cycles from one backend to another.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/harperreed/agewell/internal/config"
	"github.com/harperreed/agewell/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateForce  bool
	migrateSwitch bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data between storage backends",
	Long: `Copy all data from one storage backend to another.

BACKENDS: sqlite, markdown, postgres, charm

The destination must be empty unless --force is given. Both
backends use the data directory and DSN from your config.
After migrating, set "backend" in the config to the destination,
or pass --switch to have it saved for you.

EXAMPLES:

  agewell migrate --from sqlite --to markdown
  agewell migrate --from sqlite --to markdown --switch
  agewell migrate --from charm --to sqlite`,
	Annotations: map[string]string{lazyStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == migrateTo {
			return fmt.Errorf("source and destination are both %q", migrateFrom)
		}

		srcCfg, dstCfg := *cfg, *cfg
		srcCfg.Backend = migrateFrom
		dstCfg.Backend = migrateTo

		if dstCfg.GetBackend() == config.BackendMarkdown && !migrateForce {
			for _, sub := range []string{"habits", "cycles"} {
				nonEmpty, err := storage.IsDirNonEmpty(filepath.Join(dstCfg.GetDataDir(), sub))
				if err != nil {
					return err
				}
				if nonEmpty {
					return fmt.Errorf("destination %s already has data (use --force to merge)", filepath.Join(dstCfg.GetDataDir(), sub))
				}
			}
		}

		src, err := srcCfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open source: %w", err)
		}
		defer src.Close()

		dst, err := dstCfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		defer dst.Close()

		if !migrateForce {
			existing, err := storage.GetAllData(dst)
			if err != nil {
				return fmt.Errorf("failed to inspect destination: %w", err)
			}
			if len(existing.Habits) > 0 || len(existing.Cycles) > 0 {
				return fmt.Errorf("destination %s backend already has data (use --force to merge)", migrateTo)
			}
		}

		logger.WithField("from", migrateFrom).WithField("to", migrateTo).Info("migrating data")
		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		out := cmd.OutOrStdout()
		success(out, "Migrated %s → %s", migrateFrom, migrateTo)
		fmt.Fprintf(out, "  Habits: %d\n", summary.Habits)
		fmt.Fprintf(out, "  Completions: %d\n", summary.HabitEntries)
		fmt.Fprintf(out, "  Cycles: %d\n", summary.Cycles)
		if summary.Profile {
			fmt.Fprintln(out, "  Profile: yes")
		}
		fmt.Fprintln(out)

		if !migrateSwitch {
			color.New(color.Faint).Fprintf(out, "Set \"backend\": %q in %s to use it.\n", migrateTo, config.GetConfigPath())
			return nil
		}

		// Reload so flag overrides are not persisted.
		saved, err := config.Load()
		if err != nil {
			return err
		}
		saved.Backend = dstCfg.GetBackend()
		if err := saved.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		success(out, "Switched backend to %s", saved.Backend)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source backend")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "migrate even if the destination has data")
	migrateCmd.Flags().BoolVar(&migrateSwitch, "switch", false, "save the destination as the configured backend")
	_ = migrateCmd.MarkFlagRequired("from")
	_ = migrateCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(migrateCmd)
}
