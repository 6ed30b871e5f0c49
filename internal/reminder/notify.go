// ABOUTME: Reminder delivery through the log or by email.
// ABOUTME: Email goes out over SMTP with PLAIN auth when a username is configured.
package reminder

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/harperreed/agewell/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Notifier delivers a reminder.
type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// LogNotifier writes reminders to the logger.
type LogNotifier struct {
	Logger *logrus.Logger
}

// Notify logs the reminder at info level.
func (n LogNotifier) Notify(_ context.Context, r Reminder) error {
	n.Logger.WithFields(logrus.Fields{
		"next_start": r.Prediction.NextStartDate.Format("2006-01-02"),
		"days_until": r.DaysUntil,
	}).Info(r.Subject())
	return nil
}

type sendFunc func(e *email.Email, addr string, auth smtp.Auth) error

// EmailNotifier sends reminders by SMTP.
type EmailNotifier struct {
	cfg  config.EmailConfig
	send sendFunc
}

// NewEmailNotifier creates an email notifier from cfg.
func NewEmailNotifier(cfg config.EmailConfig) *EmailNotifier {
	return &EmailNotifier{
		cfg: cfg,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// Notify emails the reminder to the configured recipient.
func (n *EmailNotifier) Notify(ctx context.Context, r Reminder) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := email.NewEmail()
	e.From = n.cfg.From
	e.To = []string{n.cfg.To}
	e.Subject = r.Subject()
	e.Text = []byte(r.Body())

	port := n.cfg.SMTPPort
	if port == 0 {
		port = config.DefaultSMTPPort
	}
	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPHost, port)

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.SMTPHost)
	}

	if err := n.send(e, addr, auth); err != nil {
		return fmt.Errorf("send reminder email: %w", err)
	}
	return nil
}
