// ABOUTME: CLI commands for daily habit tracking.
// ABOUTME: Progress is drawn as lipgloss bars; IDs accept 8-character prefixes.
package main

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/agewell/internal/models"
	"github.com/harperreed/agewell/internal/tracker"
	"github.com/harperreed/agewell/internal/wellness"
	"github.com/spf13/cobra"
)

const barWidth = 20

var (
	habitDate     string
	habitTarget   int
	habitCategory string
)

var (
	barDone    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	barPartial = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	barEmpty   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var habitCmd = &cobra.Command{
	Use:     "habit",
	Aliases: []string{"h"},
	Short:   "Track daily habits",
	Long: `Track daily habits with a per-day target.

Completions never go above the target or below zero. Progress for
a day is the share of each target met, and the overall figure
is the mean across habits.

COMMANDS:

  list       Today's habits with progress (creates starter habits on first use)
  add        Create a habit
  done       Record one completion
  undo       Remove the latest completion
  delete     Delete a habit and its history
  progress   Overall progress for a day

EXAMPLES:

  agewell habit add "Evening walk" --target 1 --category fitness
  agewell habit done 3f2a1b9c
  agewell habit undo 3f2a --date 2024-05-06
  agewell habit progress`,
}

var habitListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List habits with today's progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := dayFlag(habitDate)
		if err != nil {
			return err
		}
		created, err := svc.EnsureDefaultHabits()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(created) > 0 {
			success(out, "Created %d starter habits", len(created))
		}

		habits, err := svc.Habits()
		if err != nil {
			return err
		}
		summary, err := svc.Progress(day)
		if err != nil {
			return err
		}

		byID := make(map[string]*models.Habit, len(habits))
		for _, h := range habits {
			byID[h.ID.String()] = h
		}
		for _, p := range summary.Habits {
			h, ok := byID[p.HabitID]
			if !ok {
				continue
			}
			category := ""
			if h.Category != nil {
				category = faint.Sprintf(" [%s]", *h.Category)
			}
			fmt.Fprintf(out, "%s %s %s %d/%d%s\n",
				faint.Sprint(shortID(h.ID)),
				padRight(truncate(h.Name, 24), 24),
				progressBar(p.Percent),
				p.Completed, p.Target,
				category)
		}
		return nil
	},
}

var habitAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := svc.AddHabit(args[0], habitTarget, habitCategory)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		success(out, "Added habit %s", h.Name)
		fmt.Fprintf(out, "  %s target %d/day\n", faint.Sprint(shortID(h.ID)), h.TargetFrequency)
		return nil
	},
}

var habitDoneCmd = &cobra.Command{
	Use:     "done <id>",
	Aliases: []string{"inc"},
	Short:   "Record one completion",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeHabit(cmd.OutOrStdout(), args[0], svc.Increment, "target already reached")
	},
}

var habitUndoCmd = &cobra.Command{
	Use:     "undo <id>",
	Aliases: []string{"dec"},
	Short:   "Remove the latest completion",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeHabit(cmd.OutOrStdout(), args[0], svc.Decrement, "nothing to undo")
	},
}

var habitDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a habit and all its completions",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := svc.DeleteHabit(args[0])
		if err != nil {
			return err
		}
		removed(cmd.OutOrStdout(), "Deleted habit %s", h.Name)
		return nil
	},
}

var habitProgressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show overall progress for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := dayFlag(habitDate)
		if err != nil {
			return err
		}
		summary, err := svc.Progress(day)
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), day, summary)
		return nil
	},
}

func changeHabit(out io.Writer, id string, change func(string, time.Time) (tracker.HabitChange, error), unchanged string) error {
	day, err := dayFlag(habitDate)
	if err != nil {
		return err
	}
	ch, err := change(id, day)
	if err != nil {
		return err
	}

	line := fmt.Sprintf("%s %d/%d", ch.Habit.Name, ch.Completed, ch.Habit.TargetFrequency)
	if !ch.Changed {
		warn(out, "%s (%s)", line, unchanged)
		return nil
	}
	success(out, "%s", line)
	return nil
}

func printSummary(out io.Writer, day time.Time, s wellness.HabitSummary) {
	fmt.Fprintf(out, "%s\n", day.Format("Monday, 2 January 2006"))
	if len(s.Habits) == 0 {
		fmt.Fprintln(out, "No habits yet. Run 'agewell habit list' to create the starter set.")
		return
	}
	for _, h := range s.Habits {
		fmt.Fprintf(out, "  %s %s %3.0f%%\n", padRight(truncate(h.Name, 24), 24), progressBar(h.Percent), h.Percent)
	}
	fmt.Fprintf(out, "\nOverall %s %.0f%%  (%d of %d habits complete)\n",
		progressBar(s.OverallPercent), s.OverallPercent, s.Completed, s.Total)
}

// progressBar renders percent (0..100) as a fixed-width bar.
func progressBar(percent float64) string {
	filled := int(math.Round(percent / 100 * barWidth))
	filled = max(0, min(barWidth, filled))

	style := barPartial
	switch {
	case filled == barWidth:
		style = barDone
	case filled == 0:
		style = barEmpty
	}
	return style.Render(strings.Repeat("█", filled)) + barEmpty.Render(strings.Repeat("░", barWidth-filled))
}

// dayFlag parses a --date value, defaulting to today.
func dayFlag(raw string) (time.Time, error) {
	if raw == "" {
		return models.Today(), nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", raw)
	}
	return d, nil
}

func init() {
	for _, c := range []*cobra.Command{habitListCmd, habitDoneCmd, habitUndoCmd, habitProgressCmd} {
		c.Flags().StringVar(&habitDate, "date", "", "day (YYYY-MM-DD, default today)")
	}
	habitAddCmd.Flags().IntVarP(&habitTarget, "target", "t", 1, "completions per day")
	habitAddCmd.Flags().StringVarP(&habitCategory, "category", "c", "", "category (hydration, fitness, nutrition, ...)")

	habitCmd.AddCommand(habitListCmd)
	habitCmd.AddCommand(habitAddCmd)
	habitCmd.AddCommand(habitDoneCmd)
	habitCmd.AddCommand(habitUndoCmd)
	habitCmd.AddCommand(habitDeleteCmd)
	habitCmd.AddCommand(habitProgressCmd)
	rootCmd.AddCommand(habitCmd)
}
