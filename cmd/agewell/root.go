// ABOUTME: Root Cobra command for the agewell CLI.
// ABOUTME: Loads config, builds the logger, and manages storage via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/agewell/internal/config"
	"github.com/harperreed/agewell/internal/storage"
	"github.com/harperreed/agewell/internal/tracker"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// lazyStorage marks commands that open storage only when they need it.
const lazyStorage = "lazy-storage"

var (
	cfg    *config.Config
	logger *logrus.Logger
	repo   storage.Repository
	svc    *tracker.Service

	rootBackend   string
	rootDataDir   string
	rootLogLevel  string
	rootLogFormat string
)

var rootCmd = &cobra.Command{
	Use:   "agewell",
	Short: "Wellness calculators and trackers for healthy ageing",
	Long: `AGE-WELL is a CLI for everyday wellness tracking.

CALCULATORS:

  $ agewell bmi --height 170 --weight 65           # BMI with an age-aware category
  $ agewell insurance --premium 5000 --smoking never --exercise regular
  $ agewell meal-plan --age-group 50-69 --diet Heart-Healthy
  $ agewell chat "which foods help my bones?"

TRACKERS:

  $ agewell habit list                  # Today's habits and progress
  $ agewell habit done abc123           # Record one completion
  $ agewell cycle add 2024-03-29 --end 2024-04-26 --period 5
  $ agewell cycle predict               # Next expected period

PROFILE:

  $ agewell profile set --name "Asha Rao" --dob 1958-06-01
  $ agewell profile photo ~/me.jpg

STORAGE:

  Data lives in SQLite at ~/.local/share/agewell/agewell.db by default.
  Set "backend" in ~/.config/agewell/config.json (or AGEWELL_BACKEND) to
  sqlite, markdown, postgres, or charm.

SERVERS:

  $ agewell serve      # JSON HTTP API on :8080
  $ agewell mcp        # MCP server on stdio
  $ agewell remind --daemon`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "install-skill" {
			return nil
		}

		// A failed previous run skips PersistentPostRunE.
		_ = closeService()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if rootBackend != "" {
			cfg.Backend = rootBackend
		}
		if rootDataDir != "" {
			cfg.DataDir = rootDataDir
		}
		logger = newLogger(cmd.ErrOrStderr())

		if cmd.Annotations[lazyStorage] == "true" {
			return nil
		}
		return openService()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeService()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootBackend, "backend", "", "storage backend (sqlite, markdown, postgres, charm)")
	rootCmd.PersistentFlags().StringVar(&rootDataDir, "data-dir", "", "data directory (default ~/.local/share/agewell)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&rootLogFormat, "log-format", "", "log format (text, json)")
}

// newLogger builds the logrus logger from flags and config. Logs go to w so
// stdout stays clean for command output and MCP stdio.
func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)

	levelName := rootLogLevel
	if levelName == "" {
		levelName = cfg.LogLevel
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	format := rootLogFormat
	if format == "" {
		format = cfg.LogFormat
	}
	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}

// openService opens the configured storage once per command run.
func openService() error {
	if svc != nil {
		return nil
	}
	r, err := cfg.OpenStorage()
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
	}
	repo = r
	svc = tracker.New(r)
	logger.WithField("backend", cfg.GetBackend()).Debug("storage opened")
	return nil
}

func closeService() error {
	if repo == nil {
		return nil
	}
	err := repo.Close()
	repo = nil
	svc = nil
	return err
}

// faint renders IDs and secondary details.
var faint = color.New(color.Faint)

func success(w io.Writer, format string, args ...any) {
	color.New(color.FgGreen).Fprintf(w, "✓ "+format+"\n", args...)
}

func removed(w io.Writer, format string, args ...any) {
	color.New(color.FgYellow).Fprintf(w, "✗ "+format+"\n", args...)
}

func warn(w io.Writer, format string, args ...any) {
	color.New(color.FgYellow).Fprintf(w, "⚠ "+format+"\n", args...)
}

func shortID(id fmt.Stringer) string {
	return id.String()[:8]
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
