// ABOUTME: Application service joining the storage repository with the wellness calculators.
// ABOUTME: Serializes habit mutations so a day's completions never exceed the target.
package tracker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/harperreed/agewell/internal/models"
	"github.com/harperreed/agewell/internal/storage"
	"github.com/harperreed/agewell/internal/wellness"
)

// ErrHabitNotFound is returned when a habit ID or prefix matches nothing.
var ErrHabitNotFound = errors.New("habit not found")

// Service is the entry point the CLI, MCP server and HTTP API share.
type Service struct {
	repo storage.Repository
	mu   sync.Mutex
}

// New creates a Service over repo. The caller keeps ownership of repo.
func New(repo storage.Repository) *Service {
	return &Service{repo: repo}
}

// Repository returns the underlying repository.
func (s *Service) Repository() storage.Repository {
	return s.repo
}

// HabitChange reports the outcome of an increment or decrement.
type HabitChange struct {
	Habit     *models.Habit
	Completed int
	Changed   bool
}

// EnsureDefaultHabits creates the starter habits when none exist and returns the ones it created.
func (s *Service) EnsureDefaultHabits() ([]*models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.ListHabits()
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	if len(existing) > 0 {
		return nil, nil
	}

	defaults := models.DefaultHabits()
	for i, h := range defaults {
		// Keep the starter set in display order.
		h.CreatedAt = h.CreatedAt.Add(time.Duration(i) * time.Millisecond)
		if err := s.repo.CreateHabit(h); err != nil {
			return nil, fmt.Errorf("create habit %q: %w", h.Name, err)
		}
	}
	return defaults, nil
}

// AddHabit validates and stores a new habit.
func (s *Service) AddHabit(name string, target int, category string) (*models.Habit, error) {
	h := models.NewHabit(name, target).WithCategory(category)
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateHabit(h); err != nil {
		return nil, fmt.Errorf("create habit: %w", err)
	}
	return h, nil
}

// DeleteHabit removes a habit and its entries.
func (s *Service) DeleteHabit(idOrPrefix string) (*models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.habit(idOrPrefix)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteHabit(h.ID.String()); err != nil {
		return nil, fmt.Errorf("delete habit: %w", err)
	}
	return h, nil
}

// Habits returns all habits, oldest first.
func (s *Service) Habits() ([]*models.Habit, error) {
	habits, err := s.repo.ListHabits()
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	return habits, nil
}

// Increment records one completion on day unless the habit already met its target.
func (s *Service) Increment(idOrPrefix string, day time.Time) (HabitChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.habit(idOrPrefix)
	if err != nil {
		return HabitChange{}, err
	}
	entries, err := s.repo.ListHabitEntries(h.ID, day)
	if err != nil {
		return HabitChange{}, fmt.Errorf("list habit entries: %w", err)
	}

	completed := len(entries)
	if !wellness.CanIncrement(completed, h.TargetFrequency) {
		return HabitChange{Habit: h, Completed: completed}, nil
	}
	if err := s.repo.AddHabitEntry(models.NewHabitEntry(h.ID, day)); err != nil {
		return HabitChange{}, fmt.Errorf("add habit entry: %w", err)
	}
	return HabitChange{
		Habit:     h,
		Completed: wellness.Increment(completed, h.TargetFrequency),
		Changed:   true,
	}, nil
}

// Decrement removes the most recently recorded completion on day, if any.
func (s *Service) Decrement(idOrPrefix string, day time.Time) (HabitChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.habit(idOrPrefix)
	if err != nil {
		return HabitChange{}, err
	}
	entries, err := s.repo.ListHabitEntries(h.ID, day)
	if err != nil {
		return HabitChange{}, fmt.Errorf("list habit entries: %w", err)
	}

	completed := len(entries)
	if !wellness.CanDecrement(completed) {
		return HabitChange{Habit: h}, nil
	}
	last := entries[len(entries)-1]
	if err := s.repo.DeleteHabitEntry(last.ID); err != nil {
		return HabitChange{}, fmt.Errorf("delete habit entry: %w", err)
	}
	return HabitChange{
		Habit:     h,
		Completed: wellness.Decrement(completed),
		Changed:   true,
	}, nil
}

// Progress summarizes every habit's completions on day.
func (s *Service) Progress(day time.Time) (wellness.HabitSummary, error) {
	habits, err := s.repo.ListHabits()
	if err != nil {
		return wellness.HabitSummary{}, fmt.Errorf("list habits: %w", err)
	}

	tallies := make([]wellness.HabitTally, 0, len(habits))
	for _, h := range habits {
		entries, err := s.repo.ListHabitEntries(h.ID, day)
		if err != nil {
			return wellness.HabitSummary{}, fmt.Errorf("list habit entries: %w", err)
		}
		tallies = append(tallies, wellness.HabitTally{
			HabitID:   h.ID.String(),
			Name:      h.Name,
			Target:    h.TargetFrequency,
			Completed: len(entries),
		})
	}
	return wellness.Summarize(tallies), nil
}

func (s *Service) habit(idOrPrefix string) (*models.Habit, error) {
	h, err := s.repo.GetHabit(idOrPrefix)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrHabitNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("get habit: %w", err)
	}
	return h, nil
}
