// ABOUTME: Cycle model for menstrual cycle logging.
// ABOUTME: Derives cycle length from start/end dates and converts to predictor input.
package models

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/agewell/internal/wellness"
)

// ErrInvalidCycle is returned when a cycle's dates or lengths are inconsistent.
var ErrInvalidCycle = errors.New("invalid cycle")

// CommonSymptoms are the symptom tags offered when logging a cycle.
var CommonSymptoms = []string{
	"Cramps", "Bloating", "Headache", "Mood swings", "Fatigue",
	"Breast tenderness", "Acne", "Food cravings", "Back pain", "Nausea",
}

// MoodOptions are the moods offered when logging a cycle.
var MoodOptions = []string{
	"Happy", "Sad", "Anxious", "Irritable", "Calm", "Energetic", "Tired", "Emotional",
}

// Cycle is one logged menstrual cycle.
type Cycle struct {
	ID           uuid.UUID
	StartDate    time.Time
	EndDate      *time.Time
	CycleLength  *int
	PeriodLength *int
	Symptoms     []string
	Mood         *string
	Notes        *string
	CreatedAt    time.Time
}

// NewCycle creates a cycle starting on the calendar day containing start.
func NewCycle(start time.Time) *Cycle {
	return &Cycle{
		ID:        uuid.New(),
		StartDate: Truncate(start),
		CreatedAt: time.Now().UTC(),
	}
}

// WithEndDate sets the end date and derives CycleLength as whole days, rounded up.
func (c *Cycle) WithEndDate(end time.Time) *Cycle {
	end = Truncate(end)
	c.EndDate = &end
	days := int(math.Ceil(end.Sub(c.StartDate).Hours() / 24))
	c.CycleLength = &days
	return c
}

// WithPeriodLength sets the number of bleeding days.
func (c *Cycle) WithPeriodLength(days int) *Cycle {
	c.PeriodLength = &days
	return c
}

// WithSymptoms sets the symptom tags, dropping duplicates.
func (c *Cycle) WithSymptoms(symptoms []string) *Cycle {
	seen := make(map[string]bool, len(symptoms))
	c.Symptoms = c.Symptoms[:0]
	for _, s := range symptoms {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		c.Symptoms = append(c.Symptoms, s)
	}
	return c
}

// WithMood sets the mood tag.
func (c *Cycle) WithMood(mood string) *Cycle {
	if mood == "" {
		c.Mood = nil
		return c
	}
	c.Mood = &mood
	return c
}

// WithNotes sets free-form notes.
func (c *Cycle) WithNotes(notes string) *Cycle {
	if notes == "" {
		c.Notes = nil
		return c
	}
	c.Notes = &notes
	return c
}

// Validate checks date order and that lengths are not negative.
func (c *Cycle) Validate() error {
	if c.StartDate.IsZero() {
		return errors.Join(ErrInvalidCycle, errors.New("start date is required"))
	}
	if c.EndDate != nil && c.EndDate.Before(c.StartDate) {
		return errors.Join(ErrInvalidCycle, errors.New("end date is before start date"))
	}
	if c.PeriodLength != nil && *c.PeriodLength < 0 {
		return errors.Join(ErrInvalidCycle, errors.New("period length cannot be negative"))
	}
	return nil
}

// Record returns the fields the cycle predictor consumes.
func (c *Cycle) Record() wellness.CycleRecord {
	return wellness.CycleRecord{
		StartDate:    c.StartDate,
		CycleLength:  c.CycleLength,
		PeriodLength: c.PeriodLength,
	}
}

// Records converts cycles, keeping their order.
func Records(cycles []*Cycle) []wellness.CycleRecord {
	out := make([]wellness.CycleRecord, 0, len(cycles))
	for _, c := range cycles {
		out = append(out, c.Record())
	}
	return out
}
