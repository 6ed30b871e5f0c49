// ABOUTME: CLI commands for menstrual cycle logging and prediction.
// ABOUTME: Predictions use the six most recent cycles.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/agewell/internal/models"
	"github.com/harperreed/agewell/internal/wellness"
	"github.com/spf13/cobra"
)

var (
	cycleEnd      string
	cyclePeriod   int
	cycleSymptoms []string
	cycleMood     string
	cycleNotes    string
	cycleLimit    int
)

var cycleCmd = &cobra.Command{
	Use:     "cycle",
	Aliases: []string{"c"},
	Short:   "Log and predict menstrual cycles",
	Long: `Log menstrual cycles and predict the next period.

A cycle's length comes from its start and end dates. The prediction
averages the six most recent cycles that have a length; the period
length defaults to 5 days when none is recorded.

SYMPTOMS: ` + strings.Join(models.CommonSymptoms, ", ") + `
MOODS:    ` + strings.Join(models.MoodOptions, ", ") + `

EXAMPLES:

  agewell cycle add 2024-03-29 --end 2024-04-26 --period 5
  agewell cycle add 2024-04-26 --symptom Cramps --symptom Fatigue --mood Tired
  agewell cycle list
  agewell cycle predict`,
}

var cycleAddCmd = &cobra.Command{
	Use:   "add <start-date>",
	Short: "Log a cycle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := models.ParseDate(args[0])
		if err != nil {
			return fmt.Errorf("invalid start date: %s (use YYYY-MM-DD)", args[0])
		}

		c := models.NewCycle(start).
			WithSymptoms(cycleSymptoms).
			WithMood(cycleMood).
			WithNotes(cycleNotes)
		if cycleEnd != "" {
			end, err := models.ParseDate(cycleEnd)
			if err != nil {
				return fmt.Errorf("invalid end date: %s (use YYYY-MM-DD)", cycleEnd)
			}
			c.WithEndDate(end)
		}
		if cmd.Flags().Changed("period") {
			c.WithPeriodLength(cyclePeriod)
		}

		if err := svc.LogCycle(c); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		success(out, "Logged cycle starting %s", c.StartDate.Format(models.DateFormat))
		details := faint.Sprint(shortID(c.ID))
		if c.CycleLength != nil {
			details += fmt.Sprintf(" %d-day cycle", *c.CycleLength)
		}
		fmt.Fprintf(out, "  %s\n", details)
		return nil
	},
}

var cycleListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List logged cycles, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cycles, err := svc.Cycles(cycleLimit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(cycles) == 0 {
			fmt.Fprintln(out, "No cycles logged.")
			return nil
		}

		for _, c := range cycles {
			end := "ongoing"
			if c.EndDate != nil {
				end = c.EndDate.Format(models.DateFormat)
			}
			length := ""
			if c.CycleLength != nil {
				length = fmt.Sprintf("%d days", *c.CycleLength)
			}
			extra := strings.Join(c.Symptoms, ", ")
			if c.Mood != nil {
				extra = strings.TrimPrefix(extra+", "+*c.Mood, ", ")
			}
			if extra != "" {
				extra = faint.Sprintf(" (%s)", truncate(extra, 40))
			}
			fmt.Fprintf(out, "%s %s → %s %s%s\n",
				faint.Sprint(shortID(c.ID)),
				c.StartDate.Format(models.DateFormat),
				padRight(end, 10),
				padRight(length, 8),
				extra)
		}
		return nil
	},
}

var cycleDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a cycle",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := svc.DeleteCycle(args[0])
		if err != nil {
			return err
		}
		removed(cmd.OutOrStdout(), "Deleted cycle starting %s", c.StartDate.Format(models.DateFormat))
		return nil
	},
}

var cyclePredictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict the next period",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, ok, err := svc.Prediction()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !ok {
			fmt.Fprintln(out, "Log at least one cycle with an end date to see predictions.")
			return nil
		}

		bold := color.New(color.Bold)
		days := wellness.DaysUntil(p, time.Now())
		fmt.Fprintf(out, "Next period   %s → %s\n",
			bold.Sprint(p.NextStartDate.Format("Mon 2 Jan 2006")),
			p.NextEndDate.Format("Mon 2 Jan 2006"))
		switch {
		case days > 0:
			fmt.Fprintf(out, "              in %d days\n", days)
		case days == 0:
			fmt.Fprintln(out, "              expected today")
		default:
			fmt.Fprintf(out, "              %d days late\n", -days)
		}
		fmt.Fprintf(out, "Cycle length  %d days (average)\n", p.AvgCycleLength)
		fmt.Fprintf(out, "Period length %d days (average)\n", p.AvgPeriodLength)
		fmt.Fprintf(out, "Reliability   %.0f%%\n", p.ReliabilityPercent)
		return nil
	},
}

func init() {
	cycleAddCmd.Flags().StringVar(&cycleEnd, "end", "", "cycle end date (YYYY-MM-DD)")
	cycleAddCmd.Flags().IntVar(&cyclePeriod, "period", 0, "period length in days")
	cycleAddCmd.Flags().StringArrayVar(&cycleSymptoms, "symptom", nil, "symptom (repeatable)")
	cycleAddCmd.Flags().StringVar(&cycleMood, "mood", "", "mood")
	cycleAddCmd.Flags().StringVar(&cycleNotes, "notes", "", "notes")
	cycleListCmd.Flags().IntVarP(&cycleLimit, "limit", "n", 12, "max number of results")

	cycleCmd.AddCommand(cycleAddCmd)
	cycleCmd.AddCommand(cycleListCmd)
	cycleCmd.AddCommand(cycleDeleteCmd)
	cycleCmd.AddCommand(cyclePredictCmd)
	rootCmd.AddCommand(cycleCmd)
}
