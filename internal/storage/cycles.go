// ABOUTME: Cycle CRUD operations for SQL storage.
// ABOUTME: Symptoms are stored as a JSON array in a TEXT column.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/agewell/internal/models"
)

// CreateCycle stores a new cycle in the database.
func (d *DB) CreateCycle(c *models.Cycle) error {
	symptoms, err := json.Marshal(c.Symptoms)
	if err != nil {
		return fmt.Errorf("marshal symptoms: %w", err)
	}
	if c.Symptoms == nil {
		symptoms = nil
	}

	query := `
		INSERT INTO cycles (id, start_date, end_date, cycle_length, period_length, symptoms, mood, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = d.exec(query,
		c.ID.String(),
		formatDate(c.StartDate),
		nullableDate(c.EndDate),
		c.CycleLength,
		c.PeriodLength,
		nullableText(symptoms),
		c.Mood,
		c.Notes,
		formatTimestamp(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create cycle: %w", err)
	}
	return nil
}

// GetCycle retrieves a cycle by ID or ID prefix.
func (d *DB) GetCycle(idOrPrefix string) (*models.Cycle, error) {
	id, err := d.resolveID("cycles", idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, start_date, end_date, cycle_length, period_length, symptoms, mood, notes, created_at
		FROM cycles
		WHERE id = ?
	`
	return scanCycle(d.queryRow(query, id))
}

// ListCycles returns cycles with the most recent start date first.
// A limit of zero or less returns all cycles.
func (d *DB) ListCycles(limit int) ([]*models.Cycle, error) {
	query := `
		SELECT id, start_date, end_date, cycle_length, period_length, symptoms, mood, notes, created_at
		FROM cycles
		ORDER BY start_date DESC, created_at DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cycles: %w", err)
	}
	defer rows.Close()

	var cycles []*models.Cycle
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, err
		}
		cycles = append(cycles, c)
	}
	return cycles, rows.Err()
}

// DeleteCycle removes a cycle by ID or prefix.
func (d *DB) DeleteCycle(idOrPrefix string) error {
	id, err := d.resolveID("cycles", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete cycle: %w", err)
	}

	result, err := d.exec("DELETE FROM cycles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete cycle: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cycle: %w", err)
	}
	if affected == 0 {
		return notFound(idOrPrefix)
	}
	return nil
}

func scanCycle(row rowScanner) (*models.Cycle, error) {
	var c models.Cycle
	var idStr, startDate, createdAt string
	var endDate, symptoms, mood, notes sql.NullString
	var cycleLength, periodLength sql.NullInt64

	err := row.Scan(&idStr, &startDate, &endDate, &cycleLength, &periodLength, &symptoms, &mood, &notes, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan cycle: %w", err)
	}

	c.ID, _ = uuid.Parse(idStr)
	c.StartDate = parseDate(startDate)
	c.CreatedAt = parseTimestamp(createdAt)
	if endDate.Valid {
		end := parseDate(endDate.String)
		c.EndDate = &end
	}
	if cycleLength.Valid {
		n := int(cycleLength.Int64)
		c.CycleLength = &n
	}
	if periodLength.Valid {
		n := int(periodLength.Int64)
		c.PeriodLength = &n
	}
	if symptoms.Valid && symptoms.String != "" {
		if err := json.Unmarshal([]byte(symptoms.String), &c.Symptoms); err != nil {
			return nil, fmt.Errorf("parse symptoms: %w", err)
		}
	}
	if mood.Valid {
		c.Mood = &mood.String
	}
	if notes.Valid {
		c.Notes = &notes.String
	}
	return &c, nil
}

func nullableText(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}
