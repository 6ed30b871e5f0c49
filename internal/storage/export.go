// ABOUTME: Export and import functionality for wellness data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats over any Repository.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/agewell/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the format version written to exports.
const ExportVersion = "1.0"

// ExportData represents the full export format for wellness data.
type ExportData struct {
	Version      string               `json:"version" yaml:"version"`
	ExportedAt   time.Time            `json:"exported_at" yaml:"exported_at"`
	Tool         string               `json:"tool" yaml:"tool"`
	Profile      *models.Profile      `json:"profile,omitempty" yaml:"profile,omitempty"`
	Habits       []*models.Habit      `json:"habits" yaml:"habits"`
	HabitEntries []*models.HabitEntry `json:"habit_entries" yaml:"habit_entries"`
	Cycles       []*models.Cycle      `json:"cycles" yaml:"cycles"`
}

// GetAllData retrieves all data from repo for export.
func GetAllData(repo Repository) (*ExportData, error) {
	profile, err := repo.GetProfile()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	habits, err := repo.ListHabits()
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}

	entries, err := repo.ListAllHabitEntries()
	if err != nil {
		return nil, fmt.Errorf("list habit entries: %w", err)
	}

	cycles, err := repo.ListCycles(0)
	if err != nil {
		return nil, fmt.Errorf("list cycles: %w", err)
	}

	return &ExportData{
		Version:      ExportVersion,
		ExportedAt:   time.Now(),
		Tool:         "agewell",
		Profile:      profile,
		Habits:       habits,
		HabitEntries: entries,
		Cycles:       cycles,
	}, nil
}

// ImportData writes every record in data into repo.
// Habits are created before their entries.
func ImportData(repo Repository, data *ExportData) error {
	if data.Profile != nil {
		if err := repo.SaveProfile(data.Profile); err != nil {
			return fmt.Errorf("import profile: %w", err)
		}
	}

	for _, h := range data.Habits {
		if err := repo.CreateHabit(h); err != nil {
			return fmt.Errorf("import habit: %w", err)
		}
	}

	for _, e := range data.HabitEntries {
		if err := repo.AddHabitEntry(e); err != nil {
			return fmt.Errorf("import habit entry: %w", err)
		}
	}

	for _, c := range data.Cycles {
		if err := repo.CreateCycle(c); err != nil {
			return fmt.Errorf("import cycle: %w", err)
		}
	}

	return nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(repo Repository) ([]byte, error) {
	data, err := GetAllData(repo)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(repo Repository, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return ImportData(repo, &data)
}

type yamlHabit struct {
	ID       string   `yaml:"id"`
	Target   int      `yaml:"target"`
	Category string   `yaml:"category,omitempty"`
	Done     []string `yaml:"done,omitempty"`
}

type yamlCycle struct {
	ID           string   `yaml:"id"`
	StartDate    string   `yaml:"start_date"`
	EndDate      string   `yaml:"end_date,omitempty"`
	CycleLength  int      `yaml:"cycle_length,omitempty"`
	PeriodLength int      `yaml:"period_length,omitempty"`
	Symptoms     []string `yaml:"symptoms,omitempty"`
	Mood         string   `yaml:"mood,omitempty"`
	Notes        string   `yaml:"notes,omitempty"`
}

// ExportYAML exports all data as YAML with entries grouped under their habit name.
func ExportYAML(repo Repository) ([]byte, error) {
	data, err := GetAllData(repo)
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string               `yaml:"version"`
		ExportedAt string               `yaml:"exported_at"`
		Tool       string               `yaml:"tool"`
		Profile    map[string]string    `yaml:"profile,omitempty"`
		Habits     map[string]yamlHabit `yaml:"habits"`
		Cycles     []yamlCycle          `yaml:"cycles"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Habits:     make(map[string]yamlHabit, len(data.Habits)),
		Cycles:     make([]yamlCycle, 0, len(data.Cycles)),
	}

	if p := data.Profile; p != nil {
		yamlData.Profile = map[string]string{"full_name": p.FullName}
		if p.Email != "" {
			yamlData.Profile["email"] = p.Email
		}
		if p.DateOfBirth != nil {
			yamlData.Profile["date_of_birth"] = formatDate(*p.DateOfBirth)
		}
	}

	names := make(map[uuid.UUID]string, len(data.Habits))
	for _, h := range data.Habits {
		names[h.ID] = h.Name
		yh := yamlHabit{ID: h.ID.String()[:8], Target: h.TargetFrequency}
		if h.Category != nil {
			yh.Category = *h.Category
		}
		yamlData.Habits[h.Name] = yh
	}
	for _, e := range data.HabitEntries {
		name, ok := names[e.HabitID]
		if !ok {
			continue
		}
		yh := yamlData.Habits[name]
		yh.Done = append(yh.Done, formatDate(e.CompletedDate))
		yamlData.Habits[name] = yh
	}

	for _, c := range data.Cycles {
		yc := yamlCycle{
			ID:        c.ID.String()[:8],
			StartDate: formatDate(c.StartDate),
			Symptoms:  c.Symptoms,
		}
		if c.EndDate != nil {
			yc.EndDate = formatDate(*c.EndDate)
		}
		if c.CycleLength != nil {
			yc.CycleLength = *c.CycleLength
		}
		if c.PeriodLength != nil {
			yc.PeriodLength = *c.PeriodLength
		}
		if c.Mood != nil {
			yc.Mood = *c.Mood
		}
		if c.Notes != nil {
			yc.Notes = *c.Notes
		}
		yamlData.Cycles = append(yamlData.Cycles, yc)
	}

	return yaml.Marshal(yamlData)
}

// ExportMarkdown exports habits and cycles as Markdown tables.
// When since is set, only entries and cycles on or after that day are included.
func ExportMarkdown(repo Repository, since *time.Time) (string, error) {
	data, err := GetAllData(repo)
	if err != nil {
		return "", err
	}

	include := func(t time.Time) bool {
		return since == nil || !t.Before(models.Truncate(*since))
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# AGE-WELL Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if p := data.Profile; p != nil {
		sb.WriteString(fmt.Sprintf("**%s**", p.FullName))
		if p.Email != "" {
			sb.WriteString(fmt.Sprintf(" <%s>", p.Email))
		}
		sb.WriteString("\n\n")
	}

	if len(data.Habits) > 0 {
		// Count completions per habit per day
		counts := make(map[uuid.UUID]map[string]int)
		days := make(map[string]bool)
		for _, e := range data.HabitEntries {
			if !include(e.CompletedDate) {
				continue
			}
			d := formatDate(e.CompletedDate)
			if counts[e.HabitID] == nil {
				counts[e.HabitID] = make(map[string]int)
			}
			counts[e.HabitID][d]++
			days[d] = true
		}

		var dayList []string
		for d := range days {
			dayList = append(dayList, d)
		}
		sort.Sort(sort.Reverse(sort.StringSlice(dayList)))

		sb.WriteString("## Habits\n\n")
		sb.WriteString("| Date | Habit | Done | Target |\n")
		sb.WriteString("|------|-------|------|--------|\n")
		for _, d := range dayList {
			for _, h := range data.Habits {
				n := counts[h.ID][d]
				if n == 0 {
					continue
				}
				sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d |\n", d, h.Name, n, h.TargetFrequency))
			}
		}
		sb.WriteString("\n")
	}

	var cycles []*models.Cycle
	for _, c := range data.Cycles {
		if include(c.StartDate) {
			cycles = append(cycles, c)
		}
	}
	if len(cycles) > 0 {
		sb.WriteString("## Cycles\n\n")
		sb.WriteString("| Start | End | Length | Period | Symptoms | Mood | Notes |\n")
		sb.WriteString("|-------|-----|--------|--------|----------|------|-------|\n")
		for _, c := range cycles {
			end, length, period, mood, notes := "", "", "", "", ""
			if c.EndDate != nil {
				end = formatDate(*c.EndDate)
			}
			if c.CycleLength != nil {
				length = fmt.Sprintf("%d days", *c.CycleLength)
			}
			if c.PeriodLength != nil {
				period = fmt.Sprintf("%d days", *c.PeriodLength)
			}
			if c.Mood != nil {
				mood = *c.Mood
			}
			if c.Notes != nil {
				notes = *c.Notes
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
				formatDate(c.StartDate), end, length, period,
				strings.Join(c.Symptoms, ", "), mood, notes))
		}
	}

	return sb.String(), nil
}
