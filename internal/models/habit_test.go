// ABOUTME: Tests for Habit and HabitEntry models.
// ABOUTME: Validates constructors, builder methods, and the starter set.
package models

import (
	"errors"
	"testing"
	"time"
)

func TestNewHabit(t *testing.T) {
	h := NewHabit("  Stretch  ", 2)

	if h.ID.String() == "" {
		t.Error("expected UUID to be set")
	}
	if h.Name != "Stretch" {
		t.Errorf("Name = %q, want Stretch", h.Name)
	}
	if h.TargetFrequency != 2 {
		t.Errorf("TargetFrequency = %d, want 2", h.TargetFrequency)
	}
	if h.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestHabitWithCategory(t *testing.T) {
	h := NewHabit("Walk", 1).WithCategory("fitness")
	if h.Category == nil || *h.Category != "fitness" {
		t.Error("expected Category to be fitness")
	}

	h.WithCategory("")
	if h.Category != nil {
		t.Error("expected empty category to clear the field")
	}
}

func TestHabitValidate(t *testing.T) {
	tests := []struct {
		name    string
		habit   *Habit
		wantErr bool
	}{
		{"valid", NewHabit("Walk", 1), false},
		{"empty name", NewHabit("   ", 1), true},
		{"zero target", NewHabit("Walk", 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.habit.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidHabit) {
				t.Errorf("Validate() = %v, want ErrInvalidHabit", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestDefaultHabits(t *testing.T) {
	habits := DefaultHabits()
	if len(habits) != 3 {
		t.Fatalf("len(DefaultHabits()) = %d, want 3", len(habits))
	}

	want := map[string]int{
		"Drink 8 glasses of water": 8,
		"Exercise for 30 minutes":  1,
		"Regular meals":            3,
	}
	for _, h := range habits {
		target, ok := want[h.Name]
		if !ok {
			t.Errorf("unexpected default habit %q", h.Name)
			continue
		}
		if h.TargetFrequency != target {
			t.Errorf("%s target = %d, want %d", h.Name, h.TargetFrequency, target)
		}
		if err := h.Validate(); err != nil {
			t.Errorf("%s invalid: %v", h.Name, err)
		}
	}
}

func TestNewHabitEntryTruncatesDay(t *testing.T) {
	h := NewHabit("Walk", 1)
	e := NewHabitEntry(h.ID, time.Date(2024, 5, 6, 21, 45, 0, 0, time.Local))

	if e.HabitID != h.ID {
		t.Error("expected HabitID to match")
	}
	if !e.CompletedDate.Equal(time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("CompletedDate = %v, want 2024-05-06", e.CompletedDate)
	}
}
