// ABOUTME: Data migration between wellness storage backends.
// ABOUTME: Copies the profile, habits, habit entries, and cycles from source to destination.

package storage

import (
	"errors"
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Profile      bool
	Habits       int
	HabitEntries int
	Cycles       int
}

// MigrateData copies all data from src to dst storage.
// The destination should be empty before calling this function.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	profile, err := src.GetProfile()
	switch {
	case err == nil:
		if err := dst.SaveProfile(profile); err != nil {
			return nil, fmt.Errorf("save profile: %w", err)
		}
		summary.Profile = true
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("get source profile: %w", err)
	}

	habits, err := src.ListHabits()
	if err != nil {
		return nil, fmt.Errorf("list source habits: %w", err)
	}
	for _, h := range habits {
		if err := dst.CreateHabit(h); err != nil {
			return nil, fmt.Errorf("create habit %s: %w", h.ID, err)
		}
		summary.Habits++
	}

	entries, err := src.ListAllHabitEntries()
	if err != nil {
		return nil, fmt.Errorf("list source habit entries: %w", err)
	}
	for _, e := range entries {
		if err := dst.AddHabitEntry(e); err != nil {
			return nil, fmt.Errorf("add habit entry %s: %w", e.ID, err)
		}
		summary.HabitEntries++
	}

	cycles, err := src.ListCycles(0)
	if err != nil {
		return nil, fmt.Errorf("list source cycles: %w", err)
	}
	for _, c := range cycles {
		if err := dst.CreateCycle(c); err != nil {
			return nil, fmt.Errorf("create cycle %s: %w", c.ID, err)
		}
		summary.Cycles++
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
