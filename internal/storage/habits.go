// ABOUTME: Habit and HabitEntry CRUD operations for SQL storage.
// ABOUTME: Implements Repository interface methods for habits with cascade delete.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/agewell/internal/models"
)

// CreateHabit stores a new habit in the database.
func (d *DB) CreateHabit(h *models.Habit) error {
	query := `
		INSERT INTO habits (id, name, target_frequency, category, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := d.exec(query,
		h.ID.String(),
		h.Name,
		h.TargetFrequency,
		h.Category,
		formatTimestamp(h.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create habit: %w", err)
	}
	return nil
}

// GetHabit retrieves a habit by ID or ID prefix.
func (d *DB) GetHabit(idOrPrefix string) (*models.Habit, error) {
	id, err := d.resolveID("habits", idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, target_frequency, category, created_at
		FROM habits
		WHERE id = ?
	`
	return scanHabit(d.queryRow(query, id))
}

// ListHabits returns all habits, oldest first.
func (d *DB) ListHabits() ([]*models.Habit, error) {
	rows, err := d.query(`
		SELECT id, name, target_frequency, category, created_at
		FROM habits
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	var habits []*models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// DeleteHabit removes a habit and all of its entries.
func (d *DB) DeleteHabit(idOrPrefix string) error {
	id, err := d.resolveID("habits", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(d.rebind("DELETE FROM habit_entries WHERE habit_id = ?"), id); err != nil {
		return fmt.Errorf("delete habit entries: %w", err)
	}
	result, err := tx.Exec(d.rebind("DELETE FROM habits WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	if affected == 0 {
		return notFound(idOrPrefix)
	}

	return tx.Commit()
}

// AddHabitEntry records one completion. The habit must exist.
func (d *DB) AddHabitEntry(e *models.HabitEntry) error {
	var exists int
	err := d.queryRow("SELECT COUNT(*) FROM habits WHERE id = ?", e.HabitID.String()).Scan(&exists)
	if err != nil {
		return fmt.Errorf("add habit entry: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("add habit entry: %w", notFound(e.HabitID.String()))
	}

	query := `
		INSERT INTO habit_entries (id, habit_id, completed_date, created_at)
		VALUES (?, ?, ?, ?)
	`
	_, err = d.exec(query,
		e.ID.String(),
		e.HabitID.String(),
		formatDate(e.CompletedDate),
		formatTimestamp(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("add habit entry: %w", err)
	}
	return nil
}

// ListHabitEntries returns a habit's entries for one calendar day, oldest first.
func (d *DB) ListHabitEntries(habitID uuid.UUID, day time.Time) ([]*models.HabitEntry, error) {
	rows, err := d.query(`
		SELECT id, habit_id, completed_date, created_at
		FROM habit_entries
		WHERE habit_id = ? AND completed_date = ?
		ORDER BY created_at ASC
	`, habitID.String(), formatDate(models.Truncate(day)))
	if err != nil {
		return nil, fmt.Errorf("list habit entries: %w", err)
	}
	defer rows.Close()
	return scanHabitEntries(rows)
}

// ListAllHabitEntries returns every entry, oldest first.
func (d *DB) ListAllHabitEntries() ([]*models.HabitEntry, error) {
	rows, err := d.query(`
		SELECT id, habit_id, completed_date, created_at
		FROM habit_entries
		ORDER BY completed_date ASC, created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list habit entries: %w", err)
	}
	defer rows.Close()
	return scanHabitEntries(rows)
}

// DeleteHabitEntry removes a single entry by its full ID.
func (d *DB) DeleteHabitEntry(id uuid.UUID) error {
	result, err := d.exec("DELETE FROM habit_entries WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("delete habit entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete habit entry: %w", err)
	}
	if affected == 0 {
		return notFound(id.String())
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (*models.Habit, error) {
	var h models.Habit
	var idStr, createdAt string
	var category sql.NullString

	err := row.Scan(&idStr, &h.Name, &h.TargetFrequency, &category, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan habit: %w", err)
	}

	h.ID, _ = uuid.Parse(idStr)
	h.CreatedAt = parseTimestamp(createdAt)
	if category.Valid {
		h.Category = &category.String
	}
	return &h, nil
}

func scanHabitEntries(rows *sql.Rows) ([]*models.HabitEntry, error) {
	var entries []*models.HabitEntry
	for rows.Next() {
		var e models.HabitEntry
		var idStr, habitID, completed, createdAt string
		if err := rows.Scan(&idStr, &habitID, &completed, &createdAt); err != nil {
			return nil, fmt.Errorf("scan habit entry: %w", err)
		}
		e.ID, _ = uuid.Parse(idStr)
		e.HabitID, _ = uuid.Parse(habitID)
		e.CompletedDate = parseDate(completed)
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
