// ABOUTME: Cycle CRUD operations and profile storage for Charm KV.
// ABOUTME: The profile lives under a single fixed key.
package charm

import (
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/agewell/internal/models"
	"github.com/harperreed/agewell/internal/storage"
)

// CreateCycle stores a new cycle in the KV store.
func (c *Client) CreateCycle(cy *models.Cycle) error {
	data, err := marshalJSON(cy)
	if err != nil {
		return fmt.Errorf("marshal cycle: %w", err)
	}
	return c.set(CyclePrefix+cy.ID.String(), data)
}

// GetCycle retrieves a cycle by ID or ID prefix.
func (c *Client) GetCycle(idOrPrefix string) (*models.Cycle, error) {
	key, err := c.resolveKey(CyclePrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get cycle: %w", err)
	}
	data, err := c.get(key)
	if err != nil {
		return nil, fmt.Errorf("get cycle: %w", err)
	}

	cy, err := unmarshalJSON[models.Cycle](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal cycle: %w", err)
	}
	return cy, nil
}

// ListCycles returns cycles with the most recent start date first.
func (c *Client) ListCycles(limit int) ([]*models.Cycle, error) {
	allData, err := c.listByPrefix(CyclePrefix)
	if err != nil {
		return nil, fmt.Errorf("list cycles: %w", err)
	}

	var cycles []*models.Cycle
	for _, data := range allData {
		cy, err := unmarshalJSON[models.Cycle](data)
		if err != nil {
			continue
		}
		cycles = append(cycles, cy)
	}
	storage.SortCycles(cycles)

	if limit > 0 && len(cycles) > limit {
		cycles = cycles[:limit]
	}
	return cycles, nil
}

// DeleteCycle removes a cycle by ID or prefix.
func (c *Client) DeleteCycle(idOrPrefix string) error {
	key, err := c.resolveKey(CyclePrefix, idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete cycle: %w", err)
	}
	if err := c.delete(key); err != nil {
		return fmt.Errorf("delete cycle: %w", err)
	}
	return nil
}

// GetProfile returns the stored profile or storage.ErrNotFound.
func (c *Client) GetProfile() (*models.Profile, error) {
	data, err := c.get(ProfileKey)
	if err != nil {
		return nil, err
	}
	p, err := unmarshalJSON[models.Profile](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return p, nil
}

// SaveProfile replaces the profile, keeping CreatedAt from any existing one.
func (c *Client) SaveProfile(p *models.Profile) error {
	now := time.Now().UTC()
	existing, err := c.GetProfile()
	switch {
	case err == nil:
		p.CreatedAt = existing.CreatedAt
	case errors.Is(err, storage.ErrNotFound):
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
	default:
		return fmt.Errorf("save profile: %w", err)
	}
	p.UpdatedAt = now

	data, err := marshalJSON(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return c.set(ProfileKey, data)
}
