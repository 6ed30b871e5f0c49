// ABOUTME: Cycle logging and next-cycle prediction.
// ABOUTME: Feeds the most recent cycles to the moving-average predictor.
package tracker

import (
	"fmt"

	"github.com/harperreed/agewell/internal/models"
	"github.com/harperreed/agewell/internal/wellness"
)

// LogCycle validates and stores a cycle.
func (s *Service) LogCycle(c *models.Cycle) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.repo.CreateCycle(c); err != nil {
		return fmt.Errorf("create cycle: %w", err)
	}
	return nil
}

// Cycles returns up to limit cycles, most recent start first. A limit of 0 returns all.
func (s *Service) Cycles(limit int) ([]*models.Cycle, error) {
	cycles, err := s.repo.ListCycles(limit)
	if err != nil {
		return nil, fmt.Errorf("list cycles: %w", err)
	}
	return cycles, nil
}

// DeleteCycle removes a cycle by ID or prefix.
func (s *Service) DeleteCycle(idOrPrefix string) (*models.Cycle, error) {
	c, err := s.repo.GetCycle(idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get cycle: %w", err)
	}
	if err := s.repo.DeleteCycle(c.ID.String()); err != nil {
		return nil, fmt.Errorf("delete cycle: %w", err)
	}
	return c, nil
}

// Prediction forecasts the next cycle from the recent history.
// The bool is false when there is not enough history to predict.
func (s *Service) Prediction() (wellness.CyclePrediction, bool, error) {
	recent, err := s.repo.ListCycles(wellness.PredictionWindow)
	if err != nil {
		return wellness.CyclePrediction{}, false, fmt.Errorf("list cycles: %w", err)
	}
	p, ok := wellness.PredictNextCycle(models.Records(recent))
	return p, ok, nil
}
