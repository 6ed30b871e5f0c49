// ABOUTME: Habit and HabitEntry models for daily habit tracking.
// ABOUTME: A habit has a daily target; each entry is one completion on a calendar day.
package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidHabit is returned by Habit.Validate.
var ErrInvalidHabit = errors.New("invalid habit")

// Habit categories used by the starter set.
const (
	CategoryHydration = "hydration"
	CategoryFitness   = "fitness"
	CategoryNutrition = "nutrition"
)

// Habit is a user-defined recurring daily goal.
type Habit struct {
	ID              uuid.UUID
	Name            string
	TargetFrequency int
	Category        *string
	CreatedAt       time.Time
}

// NewHabit creates a new Habit with generated UUID and current timestamp.
func NewHabit(name string, target int) *Habit {
	return &Habit{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(name),
		TargetFrequency: target,
		CreatedAt:       time.Now(),
	}
}

// WithCategory sets the habit category. Empty strings clear it.
func (h *Habit) WithCategory(category string) *Habit {
	category = strings.TrimSpace(category)
	if category == "" {
		h.Category = nil
		return h
	}
	h.Category = &category
	return h
}

// Validate checks the habit can be stored.
func (h *Habit) Validate() error {
	if h.Name == "" {
		return errors.Join(ErrInvalidHabit, errors.New("name is required"))
	}
	if h.TargetFrequency < 1 {
		return errors.Join(ErrInvalidHabit, errors.New("target must be at least 1"))
	}
	return nil
}

// DefaultHabits returns the starter set created for a user with no habits.
func DefaultHabits() []*Habit {
	return []*Habit{
		NewHabit("Drink 8 glasses of water", 8).WithCategory(CategoryHydration),
		NewHabit("Exercise for 30 minutes", 1).WithCategory(CategoryFitness),
		NewHabit("Regular meals", 3).WithCategory(CategoryNutrition),
	}
}

// HabitEntry is one completion of a habit on a calendar day.
type HabitEntry struct {
	ID            uuid.UUID
	HabitID       uuid.UUID
	CompletedDate time.Time
	CreatedAt     time.Time
}

// NewHabitEntry creates an entry for habitID on the calendar day containing day.
func NewHabitEntry(habitID uuid.UUID, day time.Time) *HabitEntry {
	return &HabitEntry{
		ID:            uuid.New(),
		HabitID:       habitID,
		CompletedDate: Truncate(day),
		CreatedAt:     time.Now().UTC(),
	}
}
