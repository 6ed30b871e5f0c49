// ABOUTME: Repository interface methods for the markdown store.
// ABOUTME: Every call re-reads the files so edits made by hand are picked up.

package storage

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/agewell/internal/models"
)

// CreateHabit stores a new habit as a markdown file.
func (s *MarkdownStore) CreateHabit(h *models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeHabitFile("", h, nil)
}

// GetHabit retrieves a habit by ID or ID prefix.
func (s *MarkdownStore) GetHabit(idOrPrefix string) (*models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hf, err := s.findHabitFile(idOrPrefix)
	if err != nil {
		return nil, err
	}
	return hf.habit, nil
}

// ListHabits returns all habits, oldest first.
func (s *MarkdownStore) ListHabits() ([]*models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.loadHabitFiles()
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	habits := make([]*models.Habit, 0, len(files))
	for _, hf := range files {
		habits = append(habits, hf.habit)
	}
	sort.SliceStable(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})
	return habits, nil
}

// DeleteHabit removes a habit file, and with it every embedded entry.
func (s *MarkdownStore) DeleteHabit(idOrPrefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hf, err := s.findHabitFile(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	if err := os.Remove(hf.path); err != nil {
		return fmt.Errorf("delete habit file: %w", err)
	}
	return nil
}

// AddHabitEntry appends an entry to its habit's file.
func (s *MarkdownStore) AddHabitEntry(e *models.HabitEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hf, err := s.findHabitFile(e.HabitID.String())
	if err != nil {
		return fmt.Errorf("add habit entry: %w", err)
	}
	hf.entries = append(hf.entries, e)
	return s.writeHabitFile(hf.path, hf.habit, hf.entries)
}

// ListHabitEntries returns a habit's entries for one calendar day, oldest first.
func (s *MarkdownStore) ListHabitEntries(habitID uuid.UUID, day time.Time) ([]*models.HabitEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hf, err := s.findHabitFile(habitID.String())
	if err != nil {
		return nil, fmt.Errorf("list habit entries: %w", err)
	}

	day = models.Truncate(day)
	var entries []*models.HabitEntry
	for _, e := range hf.entries {
		if e.CompletedDate.Equal(day) {
			entries = append(entries, e)
		}
	}
	SortEntries(entries)
	return entries, nil
}

// ListAllHabitEntries returns every entry across all habits, oldest first.
func (s *MarkdownStore) ListAllHabitEntries() ([]*models.HabitEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.loadHabitFiles()
	if err != nil {
		return nil, fmt.Errorf("list habit entries: %w", err)
	}
	var entries []*models.HabitEntry
	for _, hf := range files {
		entries = append(entries, hf.entries...)
	}
	SortEntries(entries)
	return entries, nil
}

// DeleteHabitEntry removes one entry by rewriting its habit file.
func (s *MarkdownStore) DeleteHabitEntry(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.loadHabitFiles()
	if err != nil {
		return fmt.Errorf("delete habit entry: %w", err)
	}
	for _, hf := range files {
		for i, e := range hf.entries {
			if e.ID != id {
				continue
			}
			hf.entries = append(hf.entries[:i], hf.entries[i+1:]...)
			return s.writeHabitFile(hf.path, hf.habit, hf.entries)
		}
	}
	return notFound(id.String())
}

// CreateCycle stores a new cycle as a markdown file.
func (s *MarkdownStore) CreateCycle(c *models.Cycle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeCycleFile(c)
}

// GetCycle retrieves a cycle by ID or ID prefix.
func (s *MarkdownStore) GetCycle(idOrPrefix string) (*models.Cycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cf, err := s.findCycleFile(idOrPrefix)
	if err != nil {
		return nil, err
	}
	return cf.cycle, nil
}

// ListCycles returns cycles with the most recent start date first.
func (s *MarkdownStore) ListCycles(limit int) ([]*models.Cycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.loadCycleFiles()
	if err != nil {
		return nil, fmt.Errorf("list cycles: %w", err)
	}
	cycles := make([]*models.Cycle, 0, len(files))
	for _, cf := range files {
		cycles = append(cycles, cf.cycle)
	}
	SortCycles(cycles)

	if limit > 0 && len(cycles) > limit {
		cycles = cycles[:limit]
	}
	return cycles, nil
}

// DeleteCycle removes a cycle file by ID or prefix.
func (s *MarkdownStore) DeleteCycle(idOrPrefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cf, err := s.findCycleFile(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete cycle: %w", err)
	}
	if err := os.Remove(cf.path); err != nil {
		return fmt.Errorf("delete cycle file: %w", err)
	}
	return nil
}

// GetProfile reads profile.md or returns ErrNotFound.
func (s *MarkdownStore) GetProfile() (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readProfile()
}

func (s *MarkdownStore) readProfile() (*models.Profile, error) {
	var fm profileFrontmatter
	if _, err := readDocument(s.profilePath(), &fm); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, notFound("profile")
		}
		return nil, fmt.Errorf("read profile: %w", err)
	}

	p := &models.Profile{
		FullName:  fm.FullName,
		Email:     fm.Email,
		CreatedAt: parseTimestamp(fm.CreatedAt),
		UpdatedAt: parseTimestamp(fm.UpdatedAt),
	}
	if fm.DateOfBirth != "" {
		dob := parseDate(fm.DateOfBirth)
		p.DateOfBirth = &dob
	}
	if fm.Gender != "" {
		gender := fm.Gender
		p.Gender = &gender
	}
	if fm.PhotoURL != "" {
		photo := fm.PhotoURL
		p.PhotoURL = &photo
	}
	return p, nil
}

// SaveProfile writes profile.md, keeping CreatedAt from an existing file.
func (s *MarkdownStore) SaveProfile(p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if existing, err := s.readProfile(); err == nil {
		p.CreatedAt = existing.CreatedAt
	} else if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	fm := profileFrontmatter{
		FullName:  p.FullName,
		Email:     p.Email,
		CreatedAt: formatTimestamp(p.CreatedAt),
		UpdatedAt: formatTimestamp(p.UpdatedAt),
	}
	if p.DateOfBirth != nil {
		fm.DateOfBirth = formatDate(*p.DateOfBirth)
	}
	if p.Gender != nil {
		fm.Gender = *p.Gender
	}
	if p.PhotoURL != nil {
		fm.PhotoURL = *p.PhotoURL
	}
	if err := writeDocument(s.profilePath(), &fm, ""); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// SortEntries orders entries by day then creation time, as every backend returns them.
func SortEntries(entries []*models.HabitEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].CompletedDate.Equal(entries[j].CompletedDate) {
			return entries[i].CompletedDate.Before(entries[j].CompletedDate)
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
}

// SortCycles orders cycles by start date, most recent first.
func SortCycles(cycles []*models.Cycle) {
	sort.SliceStable(cycles, func(i, j int) bool {
		if !cycles[i].StartDate.Equal(cycles[j].StartDate) {
			return cycles[i].StartDate.After(cycles[j].StartDate)
		}
		return cycles[i].CreatedAt.After(cycles[j].CreatedAt)
	})
}
