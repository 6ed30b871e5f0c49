// ABOUTME: Profile read and upsert for SQL storage.
// ABOUTME: The profile table holds at most one row with id 1.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/agewell/internal/models"
)

// GetProfile returns the stored profile or ErrNotFound.
func (d *DB) GetProfile() (*models.Profile, error) {
	var p models.Profile
	var email, dob, gender, photo sql.NullString
	var createdAt, updatedAt string

	err := d.queryRow(`
		SELECT full_name, email, date_of_birth, gender, photo_url, created_at, updated_at
		FROM profile
		WHERE id = 1
	`).Scan(&p.FullName, &email, &dob, &gender, &photo, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, notFound("profile")
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	p.Email = email.String
	if dob.Valid && dob.String != "" {
		t := parseDate(dob.String)
		p.DateOfBirth = &t
	}
	if gender.Valid {
		p.Gender = &gender.String
	}
	if photo.Valid {
		p.PhotoURL = &photo.String
	}
	p.CreatedAt = parseTimestamp(createdAt)
	p.UpdatedAt = parseTimestamp(updatedAt)
	return &p, nil
}

// SaveProfile inserts or updates the profile. CreatedAt is kept from the
// existing row and UpdatedAt is set to now.
func (d *DB) SaveProfile(p *models.Profile) error {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	query := `
		INSERT INTO profile (id, full_name, email, date_of_birth, gender, photo_url, created_at, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			full_name = excluded.full_name,
			email = excluded.email,
			date_of_birth = excluded.date_of_birth,
			gender = excluded.gender,
			photo_url = excluded.photo_url,
			updated_at = excluded.updated_at
	`
	_, err := d.exec(query,
		p.FullName,
		p.Email,
		nullableDate(p.DateOfBirth),
		p.Gender,
		p.PhotoURL,
		formatTimestamp(p.CreatedAt),
		formatTimestamp(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	saved, err := d.GetProfile()
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	p.CreatedAt = saved.CreatedAt
	return nil
}
