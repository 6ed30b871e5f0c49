// ABOUTME: Tests for reminder timing, notifiers, and the scheduled job.
// ABOUTME: Email delivery is captured in memory; no SMTP server is contacted.
package reminder

import (
	"bytes"
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/agewell/internal/config"
	"github.com/harperreed/agewell/internal/wellness"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func prediction(start time.Time) wellness.CyclePrediction {
	return wellness.CyclePrediction{
		NextStartDate:      start,
		NextEndDate:        start.AddDate(0, 0, 5),
		AvgCycleLength:     28,
		AvgPeriodLength:    5,
		ReliabilityPercent: 50,
	}
}

func testLogger() (*logrus.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)
	return logger, &buf
}

func TestCheck(t *testing.T) {
	p := prediction(day(2024, 4, 26))

	tests := []struct {
		name string
		now  time.Time
		due  bool
		days int
	}{
		{"too early", day(2024, 4, 20), false, 0},
		{"at lead days", day(2024, 4, 23), true, 3},
		{"tomorrow", time.Date(2024, 4, 25, 22, 0, 0, 0, time.UTC), true, 1},
		{"today", day(2024, 4, 26), true, 0},
		{"passed", day(2024, 4, 27), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, due := Check(p, tt.now, 3)
			assert.Equal(t, tt.due, due)
			if due {
				assert.Equal(t, tt.days, r.DaysUntil)
			}
		})
	}
}

func TestReminderText(t *testing.T) {
	r := Reminder{Prediction: prediction(day(2024, 4, 26)), DaysUntil: 3}
	assert.Equal(t, "AGE-WELL: your period is expected in 3 days", r.Subject())
	assert.Contains(t, r.Body(), "2024-04-26")
	assert.Contains(t, r.Body(), "2024-05-01")
	assert.Contains(t, r.Body(), "reliability: 50%")

	r.DaysUntil = 1
	assert.Contains(t, r.Subject(), "tomorrow")
	r.DaysUntil = 0
	assert.Contains(t, r.Subject(), "today")
}

func TestLogNotifier(t *testing.T) {
	logger, buf := testLogger()
	r := Reminder{Prediction: prediction(day(2024, 4, 26)), DaysUntil: 2}

	require.NoError(t, LogNotifier{Logger: logger}.Notify(context.Background(), r))
	assert.Contains(t, buf.String(), "expected in 2 days")
	assert.Contains(t, buf.String(), "next_start=2024-04-26")
}

func TestEmailNotifier(t *testing.T) {
	n := NewEmailNotifier(config.EmailConfig{
		To:       "me@example.com",
		From:     "agewell@example.com",
		SMTPHost: "smtp.example.com",
		Username: "user",
		Password: "secret",
	})

	var gotAddr string
	var gotMail *email.Email
	var gotAuth smtp.Auth
	n.send = func(e *email.Email, addr string, auth smtp.Auth) error {
		gotMail, gotAddr, gotAuth = e, addr, auth
		return nil
	}

	r := Reminder{Prediction: prediction(day(2024, 4, 26)), DaysUntil: 3}
	require.NoError(t, n.Notify(context.Background(), r))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.NotNil(t, gotAuth)
	require.NotNil(t, gotMail)
	assert.Equal(t, []string{"me@example.com"}, gotMail.To)
	assert.Equal(t, r.Subject(), gotMail.Subject)
	assert.True(t, strings.Contains(string(gotMail.Text), "2024-04-26"))
}

func TestEmailNotifierError(t *testing.T) {
	n := NewEmailNotifier(config.EmailConfig{To: "a@b.c", From: "d@e.f", SMTPHost: "smtp"})
	n.send = func(*email.Email, string, smtp.Auth) error { return errors.New("connection refused") }

	err := n.Notify(context.Background(), Reminder{Prediction: prediction(day(2024, 4, 26))})
	assert.ErrorContains(t, err, "send reminder email")
}

type stubPredictor struct {
	p   wellness.CyclePrediction
	ok  bool
	err error
}

func (s stubPredictor) Prediction() (wellness.CyclePrediction, bool, error) {
	return s.p, s.ok, s.err
}

type countingNotifier struct{ calls int }

func (c *countingNotifier) Notify(context.Context, Reminder) error {
	c.calls++
	return nil
}

func TestJobSendsOncePerDay(t *testing.T) {
	logger, _ := testLogger()
	counter := &countingNotifier{}
	job := NewJob(stubPredictor{p: prediction(day(2024, 4, 26)), ok: true}, 3, logger, counter)

	job.now = func() time.Time { return time.Date(2024, 4, 24, 8, 0, 0, 0, time.UTC) }
	sent, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, sent)

	sent, err = job.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, sent)

	job.now = func() time.Time { return time.Date(2024, 4, 25, 8, 0, 0, 0, time.UTC) }
	sent, err = job.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, sent)

	assert.Equal(t, 2, counter.calls)
}

func TestJobWithoutPrediction(t *testing.T) {
	logger, _ := testLogger()
	counter := &countingNotifier{}
	job := NewJob(stubPredictor{}, 3, logger, counter)

	sent, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Zero(t, counter.calls)

	job.Source = stubPredictor{err: errors.New("db down")}
	_, err = job.Run(context.Background())
	assert.Error(t, err)
}

func TestNewSchedulerRejectsBadSpec(t *testing.T) {
	logger, _ := testLogger()
	_, err := NewScheduler("not a cron spec", NewJob(stubPredictor{}, 3, logger), logger)
	assert.Error(t, err)
}

func TestSchedulerStopsOnCancel(t *testing.T) {
	logger, buf := testLogger()
	s, err := NewScheduler("0 8 * * *", NewJob(stubPredictor{}, 3, logger), logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.Contains(t, buf.String(), "reminder scheduler stopped")
}
