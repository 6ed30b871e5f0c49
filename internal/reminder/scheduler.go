// ABOUTME: Cron-driven reminder checks.
// ABOUTME: Runs the prediction on a schedule and notifies at most once per day.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/harperreed/agewell/internal/models"
	"github.com/harperreed/agewell/internal/wellness"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Predictor supplies the current cycle prediction.
type Predictor interface {
	Prediction() (wellness.CyclePrediction, bool, error)
}

// Job checks for a due reminder and sends it through every notifier.
type Job struct {
	Source    Predictor
	Notifiers []Notifier
	LeadDays  int
	Logger    *logrus.Logger

	now      func() time.Time
	mu       sync.Mutex
	lastSent string
}

// NewJob creates a reminder job.
func NewJob(source Predictor, leadDays int, logger *logrus.Logger, notifiers ...Notifier) *Job {
	return &Job{
		Source:    source,
		Notifiers: notifiers,
		LeadDays:  leadDays,
		Logger:    logger,
		now:       time.Now,
	}
}

// Run performs one check. It reports whether a reminder was sent.
func (j *Job) Run(ctx context.Context) (bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	p, ok, err := j.Source.Prediction()
	if err != nil {
		return false, fmt.Errorf("predict cycle: %w", err)
	}
	if !ok {
		j.Logger.Debug("not enough cycle history for a reminder")
		return false, nil
	}

	now := j.now()
	r, due := Check(p, now, j.LeadDays)
	if !due {
		j.Logger.WithField("next_start", p.NextStartDate.Format(models.DateFormat)).Debug("no reminder due")
		return false, nil
	}

	key := models.Truncate(now).Format(models.DateFormat) + "/" + p.NextStartDate.Format(models.DateFormat)
	if key == j.lastSent {
		return false, nil
	}

	var errs []error
	for _, n := range j.Notifiers {
		if err := n.Notify(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return false, err
	}
	j.lastSent = key
	return true, nil
}

// Scheduler runs a Job on a cron spec.
type Scheduler struct {
	cron   *cron.Cron
	job    *Job
	logger *logrus.Logger
}

// NewScheduler validates spec and prepares the schedule.
func NewScheduler(spec string, job *Job, logger *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{cron: cron.New(), job: job, logger: logger}
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, fmt.Errorf("parse cron spec %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) tick() {
	sent, err := s.job.Run(context.Background())
	if err != nil {
		s.logger.WithError(err).Error("reminder check failed")
		return
	}
	if sent {
		s.logger.Info("reminder sent")
	}
}

// Run starts the schedule and blocks until ctx is cancelled and running checks finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	s.logger.WithField("entries", len(s.cron.Entries())).Info("reminder scheduler started")

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.logger.Info("reminder scheduler stopped")
	return nil
}
