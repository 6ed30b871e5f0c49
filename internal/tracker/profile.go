// ABOUTME: Profile reads, updates, and photo uploads.
// ABOUTME: The profile age is the default age for the BMI and insurance calculators.
package tracker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harperreed/agewell/internal/models"
	"github.com/harperreed/agewell/internal/storage"
)

// Profile returns the stored profile or storage.ErrNotFound.
func (s *Service) Profile() (*models.Profile, error) {
	p, err := s.repo.GetProfile()
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// UpdateProfile validates and saves p.
func (s *Service) UpdateProfile(p *models.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.repo.SaveProfile(p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// UploadPhoto copies the image at path into store and points the profile at it.
func (s *Service) UploadPhoto(store storage.PhotoStore, path string) (*models.Profile, error) {
	p, err := s.Profile()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	url, err := store.SavePhoto(filepath.Base(path), f)
	if err != nil {
		return nil, err
	}
	p.PhotoURL = &url
	if err := s.repo.SaveProfile(p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return p, nil
}

// ProfileAge returns the profile holder's age on now.
// The bool is false when there is no profile or no date of birth.
func (s *Service) ProfileAge(now time.Time) (int, bool, error) {
	p, err := s.repo.GetProfile()
	if errors.Is(err, storage.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get profile: %w", err)
	}
	age, ok := p.Age(now)
	return age, ok, nil
}
