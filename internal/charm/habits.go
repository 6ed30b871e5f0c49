// ABOUTME: Habit and HabitEntry CRUD operations for Charm KV storage.
// ABOUTME: Handles cascade deletes manually since KV has no foreign keys.
package charm

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/agewell/internal/models"
	"github.com/harperreed/agewell/internal/storage"
)

// CreateHabit stores a new habit in the KV store.
func (c *Client) CreateHabit(h *models.Habit) error {
	data, err := marshalJSON(h)
	if err != nil {
		return fmt.Errorf("marshal habit: %w", err)
	}
	return c.set(HabitPrefix+h.ID.String(), data)
}

// GetHabit retrieves a habit by ID or ID prefix.
func (c *Client) GetHabit(idOrPrefix string) (*models.Habit, error) {
	key, err := c.resolveKey(HabitPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get habit: %w", err)
	}
	data, err := c.get(key)
	if err != nil {
		return nil, fmt.Errorf("get habit: %w", err)
	}

	h, err := unmarshalJSON[models.Habit](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal habit: %w", err)
	}
	return h, nil
}

// ListHabits returns all habits, oldest first.
func (c *Client) ListHabits() ([]*models.Habit, error) {
	allData, err := c.listByPrefix(HabitPrefix)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}

	var habits []*models.Habit
	for _, data := range allData {
		h, err := unmarshalJSON[models.Habit](data)
		if err != nil {
			continue
		}
		habits = append(habits, h)
	}

	sort.SliceStable(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})
	return habits, nil
}

// DeleteHabit removes a habit and all its entries (cascade delete).
func (c *Client) DeleteHabit(idOrPrefix string) error {
	h, err := c.GetHabit(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}

	entries, err := c.listEntries(func(e *models.HabitEntry) bool { return e.HabitID == h.ID })
	if err != nil {
		return fmt.Errorf("delete habit entries: %w", err)
	}
	for _, e := range entries {
		if err := c.delete(HabitEntryPrefix + e.ID.String()); err != nil {
			return fmt.Errorf("delete habit entries: %w", err)
		}
	}

	if err := c.delete(HabitPrefix + h.ID.String()); err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return nil
}

// AddHabitEntry stores one completion. The habit must exist.
func (c *Client) AddHabitEntry(e *models.HabitEntry) error {
	if _, err := c.get(HabitPrefix + e.HabitID.String()); err != nil {
		return fmt.Errorf("add habit entry: %w", err)
	}

	data, err := marshalJSON(e)
	if err != nil {
		return fmt.Errorf("marshal habit entry: %w", err)
	}
	return c.set(HabitEntryPrefix+e.ID.String(), data)
}

// ListHabitEntries returns a habit's entries for one calendar day, oldest first.
func (c *Client) ListHabitEntries(habitID uuid.UUID, day time.Time) ([]*models.HabitEntry, error) {
	day = models.Truncate(day)
	entries, err := c.listEntries(func(e *models.HabitEntry) bool {
		return e.HabitID == habitID && e.CompletedDate.Equal(day)
	})
	if err != nil {
		return nil, fmt.Errorf("list habit entries: %w", err)
	}
	return entries, nil
}

// ListAllHabitEntries returns every entry, oldest first.
func (c *Client) ListAllHabitEntries() ([]*models.HabitEntry, error) {
	entries, err := c.listEntries(func(*models.HabitEntry) bool { return true })
	if err != nil {
		return nil, fmt.Errorf("list habit entries: %w", err)
	}
	return entries, nil
}

// DeleteHabitEntry removes one entry by its full ID.
func (c *Client) DeleteHabitEntry(id uuid.UUID) error {
	key := HabitEntryPrefix + id.String()
	if _, err := c.get(key); err != nil {
		return fmt.Errorf("delete habit entry: %w", err)
	}
	if err := c.delete(key); err != nil {
		return fmt.Errorf("delete habit entry: %w", err)
	}
	return nil
}

func (c *Client) listEntries(keep func(*models.HabitEntry) bool) ([]*models.HabitEntry, error) {
	allData, err := c.listByPrefix(HabitEntryPrefix)
	if err != nil {
		return nil, err
	}

	var entries []*models.HabitEntry
	for _, data := range allData {
		e, err := unmarshalJSON[models.HabitEntry](data)
		if err != nil {
			continue
		}
		if keep(e) {
			entries = append(entries, e)
		}
	}
	storage.SortEntries(entries)
	return entries, nil
}
