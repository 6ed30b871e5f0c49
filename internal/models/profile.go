// ABOUTME: Profile model for the single local user.
// ABOUTME: Holds display details and computes age from date of birth.
package models

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidProfile is returned by Profile.Validate.
var ErrInvalidProfile = errors.New("invalid profile")

// Profile is the user's personal details.
type Profile struct {
	FullName    string
	Email       string
	DateOfBirth *time.Time
	Gender      *string
	PhotoURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProfile creates a profile with the given name.
func NewProfile(fullName string) *Profile {
	now := time.Now().UTC()
	return &Profile{
		FullName:  strings.TrimSpace(fullName),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the profile can be saved.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.FullName) == "" {
		return errors.Join(ErrInvalidProfile, errors.New("full name is required"))
	}
	if p.DateOfBirth != nil && p.DateOfBirth.After(time.Now()) {
		return errors.Join(ErrInvalidProfile, errors.New("date of birth is in the future"))
	}
	return nil
}

// Age returns whole years between DateOfBirth and now.
// The second result is false when no date of birth is set.
func (p *Profile) Age(now time.Time) (int, bool) {
	if p.DateOfBirth == nil {
		return 0, false
	}
	dob := *p.DateOfBirth
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		return 0, false
	}
	return years, true
}
