// ABOUTME: Core MarkdownStore struct and file helpers for file-based wellness data storage.
// ABOUTME: Habits embed their entries; cycles carry notes as the markdown body.

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/agewell/internal/models"
	"gopkg.in/yaml.v3"
)

// MarkdownStore provides file-based storage for wellness data using markdown files.
type MarkdownStore struct {
	dataDir string
	mu      sync.Mutex
}

// Compile-time check that MarkdownStore implements Repository.
var _ Repository = (*MarkdownStore)(nil)

// NewMarkdownStore creates a new markdown-backed store rooted at dataDir.
func NewMarkdownStore(dataDir string) (*MarkdownStore, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &MarkdownStore{dataDir: dataDir}, nil
}

// Close releases resources. For MarkdownStore this is a no-op.
func (s *MarkdownStore) Close() error {
	return nil
}

func (s *MarkdownStore) habitsDir() string {
	return filepath.Join(s.dataDir, "habits")
}

func (s *MarkdownStore) cyclesDir() string {
	return filepath.Join(s.dataDir, "cycles")
}

func (s *MarkdownStore) profilePath() string {
	return filepath.Join(s.dataDir, "profile.md")
}

// habitFilePath returns habits/<slug>-<id_prefix>.md.
func (s *MarkdownStore) habitFilePath(name string, id uuid.UUID) string {
	return filepath.Join(s.habitsDir(), fmt.Sprintf("%s-%s.md", slugify(name), id.String()[:8]))
}

// cycleFilePath returns cycles/YYYY/YYYY-MM-DD-<id_prefix>.md.
func (s *MarkdownStore) cycleFilePath(start time.Time, id uuid.UUID) string {
	return filepath.Join(s.cyclesDir(), start.Format("2006"),
		fmt.Sprintf("%s-%s.md", start.Format("2006-01-02"), id.String()[:8]))
}

// habitFrontmatter holds the YAML frontmatter of a habit file.
type habitFrontmatter struct {
	ID              string                  `yaml:"id"`
	Name            string                  `yaml:"name"`
	TargetFrequency int                     `yaml:"target_frequency"`
	Category        string                  `yaml:"category,omitempty"`
	CreatedAt       string                  `yaml:"created_at"`
	Entries         []habitEntryFrontmatter `yaml:"entries,omitempty"`
}

// habitEntryFrontmatter holds one completion inside a habit file.
type habitEntryFrontmatter struct {
	ID            string `yaml:"id"`
	CompletedDate string `yaml:"completed_date"`
	CreatedAt     string `yaml:"created_at"`
}

// cycleFrontmatter holds the YAML frontmatter of a cycle file.
type cycleFrontmatter struct {
	ID           string   `yaml:"id"`
	StartDate    string   `yaml:"start_date"`
	EndDate      string   `yaml:"end_date,omitempty"`
	CycleLength  *int     `yaml:"cycle_length,omitempty"`
	PeriodLength *int     `yaml:"period_length,omitempty"`
	Symptoms     []string `yaml:"symptoms,omitempty"`
	Mood         string   `yaml:"mood,omitempty"`
	CreatedAt    string   `yaml:"created_at"`
}

// profileFrontmatter holds the YAML frontmatter of profile.md.
type profileFrontmatter struct {
	FullName    string `yaml:"full_name"`
	Email       string `yaml:"email,omitempty"`
	DateOfBirth string `yaml:"date_of_birth,omitempty"`
	Gender      string `yaml:"gender,omitempty"`
	PhotoURL    string `yaml:"photo_url,omitempty"`
	CreatedAt   string `yaml:"created_at"`
	UpdatedAt   string `yaml:"updated_at"`
}

// habitFile is a parsed habit document.
type habitFile struct {
	path    string
	habit   *models.Habit
	entries []*models.HabitEntry
}

func habitToFrontmatter(h *models.Habit, entries []*models.HabitEntry) habitFrontmatter {
	fm := habitFrontmatter{
		ID:              h.ID.String(),
		Name:            h.Name,
		TargetFrequency: h.TargetFrequency,
		CreatedAt:       formatTimestamp(h.CreatedAt),
	}
	if h.Category != nil {
		fm.Category = *h.Category
	}
	for _, e := range entries {
		fm.Entries = append(fm.Entries, habitEntryFrontmatter{
			ID:            e.ID.String(),
			CompletedDate: formatDate(e.CompletedDate),
			CreatedAt:     formatTimestamp(e.CreatedAt),
		})
	}
	return fm
}

func habitFromFrontmatter(fm *habitFrontmatter) (*models.Habit, []*models.HabitEntry, error) {
	id, err := uuid.Parse(fm.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("parse habit ID %q: %w", fm.ID, err)
	}
	h := &models.Habit{
		ID:              id,
		Name:            fm.Name,
		TargetFrequency: fm.TargetFrequency,
		CreatedAt:       parseTimestamp(fm.CreatedAt),
	}
	if fm.Category != "" {
		category := fm.Category
		h.Category = &category
	}

	entries := make([]*models.HabitEntry, 0, len(fm.Entries))
	for _, ef := range fm.Entries {
		entryID, err := uuid.Parse(ef.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("parse habit entry ID %q: %w", ef.ID, err)
		}
		entries = append(entries, &models.HabitEntry{
			ID:            entryID,
			HabitID:       id,
			CompletedDate: parseDate(ef.CompletedDate),
			CreatedAt:     parseTimestamp(ef.CreatedAt),
		})
	}
	return h, entries, nil
}

func cycleToFrontmatter(c *models.Cycle) cycleFrontmatter {
	fm := cycleFrontmatter{
		ID:           c.ID.String(),
		StartDate:    formatDate(c.StartDate),
		CycleLength:  c.CycleLength,
		PeriodLength: c.PeriodLength,
		Symptoms:     c.Symptoms,
		CreatedAt:    formatTimestamp(c.CreatedAt),
	}
	if c.EndDate != nil {
		fm.EndDate = formatDate(*c.EndDate)
	}
	if c.Mood != nil {
		fm.Mood = *c.Mood
	}
	return fm
}

func cycleFromFrontmatter(fm *cycleFrontmatter, notes string) (*models.Cycle, error) {
	id, err := uuid.Parse(fm.ID)
	if err != nil {
		return nil, fmt.Errorf("parse cycle ID %q: %w", fm.ID, err)
	}
	start, err := time.Parse("2006-01-02", fm.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parse start_date %q: %w", fm.StartDate, err)
	}
	c := &models.Cycle{
		ID:           id,
		StartDate:    start,
		CycleLength:  fm.CycleLength,
		PeriodLength: fm.PeriodLength,
		Symptoms:     fm.Symptoms,
		CreatedAt:    parseTimestamp(fm.CreatedAt),
	}
	if fm.EndDate != "" {
		end := parseDate(fm.EndDate)
		c.EndDate = &end
	}
	if fm.Mood != "" {
		mood := fm.Mood
		c.Mood = &mood
	}
	if notes != "" {
		c.Notes = &notes
	}
	return c, nil
}

// readDocument reads a markdown file and decodes its frontmatter into fm.
func readDocument(path string, fm any) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	header, body := parseFrontmatter(string(data))
	if header == "" {
		return "", fmt.Errorf("no frontmatter in %s", path)
	}
	if err := yaml.Unmarshal([]byte(header), fm); err != nil {
		return "", fmt.Errorf("parse frontmatter in %s: %w", path, err)
	}
	return strings.TrimSpace(body), nil
}

// writeDocument renders fm and body and writes the file atomically.
func writeDocument(path string, fm any, body string) error {
	if body != "" {
		body = "\n" + body + "\n"
	}
	content, err := renderFrontmatter(fm, body)
	if err != nil {
		return err
	}
	return atomicWrite(path, []byte(content))
}

func readHabitFile(path string) (*habitFile, error) {
	var fm habitFrontmatter
	if _, err := readDocument(path, &fm); err != nil {
		return nil, err
	}
	h, entries, err := habitFromFrontmatter(&fm)
	if err != nil {
		return nil, err
	}
	return &habitFile{path: path, habit: h, entries: entries}, nil
}

func (s *MarkdownStore) writeHabitFile(path string, h *models.Habit, entries []*models.HabitEntry) error {
	if path == "" {
		path = s.habitFilePath(h.Name, h.ID)
	}
	fm := habitToFrontmatter(h, entries)
	if err := writeDocument(path, &fm, ""); err != nil {
		return fmt.Errorf("write habit file: %w", err)
	}
	return nil
}

func readCycleFile(path string) (*models.Cycle, error) {
	var fm cycleFrontmatter
	notes, err := readDocument(path, &fm)
	if err != nil {
		return nil, err
	}
	return cycleFromFrontmatter(&fm, notes)
}

func (s *MarkdownStore) writeCycleFile(c *models.Cycle) error {
	fm := cycleToFrontmatter(c)
	notes := ""
	if c.Notes != nil {
		notes = *c.Notes
	}
	if err := writeDocument(s.cycleFilePath(c.StartDate, c.ID), &fm, notes); err != nil {
		return fmt.Errorf("write cycle file: %w", err)
	}
	return nil
}

// walkMarkdown calls fn for every .md file under dir. A missing dir is empty.
func walkMarkdown(dir string, fn func(path string) error) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		return fn(path)
	})
}

func (s *MarkdownStore) loadHabitFiles() ([]*habitFile, error) {
	var files []*habitFile
	err := walkMarkdown(s.habitsDir(), func(path string) error {
		hf, err := readHabitFile(path)
		if err != nil {
			return fmt.Errorf("read habit file %s: %w", path, err)
		}
		files = append(files, hf)
		return nil
	})
	return files, err
}

type cycleFile struct {
	path  string
	cycle *models.Cycle
}

func (s *MarkdownStore) loadCycleFiles() ([]cycleFile, error) {
	var files []cycleFile
	err := walkMarkdown(s.cyclesDir(), func(path string) error {
		c, err := readCycleFile(path)
		if err != nil {
			return fmt.Errorf("read cycle file %s: %w", path, err)
		}
		files = append(files, cycleFile{path: path, cycle: c})
		return nil
	})
	return files, err
}

// findHabitFile resolves a habit by ID or prefix.
func (s *MarkdownStore) findHabitFile(idOrPrefix string) (*habitFile, error) {
	files, err := s.loadHabitFiles()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(files))
	for i, hf := range files {
		ids[i] = hf.habit.ID.String()
	}
	id, err := MatchPrefix(ids, idOrPrefix)
	if err != nil {
		return nil, err
	}
	for _, hf := range files {
		if hf.habit.ID.String() == id {
			return hf, nil
		}
	}
	return nil, notFound(idOrPrefix)
}

// findCycleFile resolves a cycle by ID or prefix.
func (s *MarkdownStore) findCycleFile(idOrPrefix string) (*cycleFile, error) {
	files, err := s.loadCycleFiles()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(files))
	for i, cf := range files {
		ids[i] = cf.cycle.ID.String()
	}
	id, err := MatchPrefix(ids, idOrPrefix)
	if err != nil {
		return nil, err
	}
	for i := range files {
		if files[i].cycle.ID.String() == id {
			return &files[i], nil
		}
	}
	return nil, notFound(idOrPrefix)
}
