// ABOUTME: Menstrual cycle predictor using a moving average of recent cycles.
// ABOUTME: Predicts the next start/end dates and scores reliability by data coverage.
package wellness

import (
	"math"
	"time"
)

const (
	// PredictionWindow is the number of most recent cycles the predictor considers.
	PredictionWindow = 6
	// DefaultPeriodLength is used when no recent cycle records a period length.
	DefaultPeriodLength = 5
)

// CycleRecord is the part of a logged cycle the predictor needs.
type CycleRecord struct {
	StartDate    time.Time
	CycleLength  *int
	PeriodLength *int
}

// CyclePrediction is the derived forecast. It is never stored.
type CyclePrediction struct {
	NextStartDate      time.Time `json:"next_start_date"`
	NextEndDate        time.Time `json:"next_end_date"`
	AvgCycleLength     int       `json:"avg_cycle_length"`
	AvgPeriodLength    int       `json:"avg_period_length"`
	ReliabilityPercent float64   `json:"reliability_percent"`
}

// PredictNextCycle forecasts the next cycle from history ordered most recent first.
// It returns false when there is no history or no recent cycle has a usable length.
func PredictNextCycle(history []CycleRecord) (CyclePrediction, bool) {
	if len(history) == 0 {
		return CyclePrediction{}, false
	}

	recent := history[:min(PredictionWindow, len(history))]

	var cycleSum, cycleCount, periodSum, periodCount int
	for _, c := range recent {
		if present(c.CycleLength) {
			cycleSum += *c.CycleLength
			cycleCount++
		}
		if present(c.PeriodLength) {
			periodSum += *c.PeriodLength
			periodCount++
		}
	}
	if cycleCount == 0 {
		return CyclePrediction{}, false
	}

	avgCycle := int(math.Round(float64(cycleSum) / float64(cycleCount)))
	avgPeriod := DefaultPeriodLength
	if periodCount > 0 {
		avgPeriod = int(math.Round(float64(periodSum) / float64(periodCount)))
	}

	start := recent[0].StartDate.AddDate(0, 0, avgCycle)
	return CyclePrediction{
		NextStartDate:      start,
		NextEndDate:        start.AddDate(0, 0, avgPeriod),
		AvgCycleLength:     avgCycle,
		AvgPeriodLength:    avgPeriod,
		ReliabilityPercent: min(100, float64(cycleCount)/PredictionWindow*100),
	}, true
}

// DaysUntil returns whole calendar days from now until the predicted start.
// Negative values mean the predicted start has passed.
func DaysUntil(p CyclePrediction, now time.Time) int {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	s := p.NextStartDate
	to := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func present(v *int) bool {
	return v != nil && *v > 0
}
