// ABOUTME: Repository interface for wellness data storage.
// ABOUTME: Defines the contract for habits, habit entries, cycles, and the profile.
package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/agewell/internal/models"
)

var (
	// ErrNotFound is returned when no record matches an ID, prefix, or lookup.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguousID is returned when an ID prefix matches more than one record.
	ErrAmbiguousID = errors.New("ambiguous prefix")
)

// Repository defines the storage interface for wellness data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Habit operations
	CreateHabit(h *models.Habit) error
	GetHabit(idOrPrefix string) (*models.Habit, error)
	ListHabits() ([]*models.Habit, error)
	DeleteHabit(idOrPrefix string) error

	// Habit entry operations. Entries for a day are returned oldest first.
	AddHabitEntry(e *models.HabitEntry) error
	ListHabitEntries(habitID uuid.UUID, day time.Time) ([]*models.HabitEntry, error)
	ListAllHabitEntries() ([]*models.HabitEntry, error)
	DeleteHabitEntry(id uuid.UUID) error

	// Cycle operations. Cycles are returned most recent start first.
	CreateCycle(c *models.Cycle) error
	GetCycle(idOrPrefix string) (*models.Cycle, error)
	ListCycles(limit int) ([]*models.Cycle, error)
	DeleteCycle(idOrPrefix string) error

	// Profile operations
	GetProfile() (*models.Profile, error)
	SaveProfile(p *models.Profile) error

	// Lifecycle
	Close() error
}

// IsFullUUID reports whether s looks like a complete UUID rather than a prefix.
func IsFullUUID(s string) bool {
	return len(s) == 36 && strings.Count(s, "-") == 4
}

// notFound wraps ErrNotFound with the lookup key.
func notFound(key string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, key)
}

// ambiguous wraps ErrAmbiguousID with the prefix.
func ambiguous(prefix string) error {
	return fmt.Errorf("%w %s: matches multiple records", ErrAmbiguousID, prefix)
}

// MatchPrefix picks the single id starting with idOrPrefix.
// Backends that hold every id in memory share this resolution rule.
func MatchPrefix(ids []string, idOrPrefix string) (string, error) {
	if idOrPrefix == "" {
		return "", notFound(idOrPrefix)
	}
	var match string
	count := 0
	for _, id := range ids {
		if IsFullUUID(idOrPrefix) {
			if id == idOrPrefix {
				return id, nil
			}
			continue
		}
		if strings.HasPrefix(id, idOrPrefix) {
			match = id
			count++
		}
	}
	switch {
	case count == 0:
		return "", notFound(idOrPrefix)
	case count > 1:
		return "", ambiguous(idOrPrefix)
	}
	return match, nil
}

// NotFoundError builds an ErrNotFound for backends outside this package.
func NotFoundError(key string) error {
	return notFound(key)
}
