// ABOUTME: CLI command for upcoming-period reminders.
// ABOUTME: Checks once, or runs on the configured cron schedule with --daemon.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/harperreed/agewell/internal/reminder"
	"github.com/spf13/cobra"
)

var (
	remindDaemon bool
	remindLead   int
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Remind about the next predicted period",
	Long: `Check whether the next predicted period is close and send a reminder.

A reminder is due when the predicted start is within the lead time
(reminder.lead_days, default 3). With --daemon the check runs on
reminder.cron (default "0 8 * * *") and sends at most once a day.

Email is sent when reminder.email.to, from, and smtp_host are set.

EXAMPLES:

  agewell remind
  agewell remind --lead 5
  agewell remind --daemon`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lead := cfg.GetLeadDays()
		if cmd.Flags().Changed("lead") {
			lead = remindLead
		}

		var notifiers []reminder.Notifier
		if remindDaemon {
			notifiers = append(notifiers, reminder.LogNotifier{Logger: logger})
		} else {
			notifiers = append(notifiers, consoleNotifier{out: cmd.OutOrStdout()})
		}
		if email := cfg.Reminder.Email; email.Enabled() {
			notifiers = append(notifiers, reminder.NewEmailNotifier(email))
		}
		job := reminder.NewJob(svc, lead, logger, notifiers...)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if !remindDaemon {
			sent, err := job.Run(ctx)
			if err != nil {
				return err
			}
			if !sent {
				fmt.Fprintln(cmd.OutOrStdout(), "No reminder due.")
			}
			return nil
		}

		scheduler, err := reminder.NewScheduler(cfg.GetReminderCron(), job, logger)
		if err != nil {
			return err
		}
		return scheduler.Run(ctx)
	},
}

// consoleNotifier prints reminders for one-off checks.
type consoleNotifier struct {
	out io.Writer
}

func (n consoleNotifier) Notify(_ context.Context, r reminder.Reminder) error {
	color.New(color.FgMagenta, color.Bold).Fprintln(n.out, r.Subject())
	fmt.Fprintln(n.out, r.Body())
	return nil
}

func init() {
	remindCmd.Flags().BoolVar(&remindDaemon, "daemon", false, "run on the configured cron schedule")
	remindCmd.Flags().IntVar(&remindLead, "lead", 0, "days ahead to remind (default from config, 3)")
	rootCmd.AddCommand(remindCmd)
}
