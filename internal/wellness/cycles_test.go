// ABOUTME: Tests for the cycle predictor.
// ABOUTME: Covers empty history, averaging window, defaults, and reliability scoring.
package wellness

import (
	"testing"
	"time"
)

func intPtr(i int) *int { return &i }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPredictNextCycleNoHistory(t *testing.T) {
	if _, ok := PredictNextCycle(nil); ok {
		t.Error("expected no prediction for empty history")
	}
}

func TestPredictNextCycleWithoutLengths(t *testing.T) {
	history := []CycleRecord{{StartDate: day("2024-03-01"), PeriodLength: intPtr(4)}}
	if _, ok := PredictNextCycle(history); ok {
		t.Error("expected no prediction when no cycle has a length")
	}
}

func TestPredictNextCycleThreeCycles(t *testing.T) {
	history := []CycleRecord{
		{StartDate: day("2024-03-29"), CycleLength: intPtr(28)},
		{StartDate: day("2024-03-01"), CycleLength: intPtr(28)},
		{StartDate: day("2024-02-02"), CycleLength: intPtr(28)},
	}

	got, ok := PredictNextCycle(history)
	if !ok {
		t.Fatal("expected a prediction")
	}
	if got.AvgCycleLength != 28 {
		t.Errorf("AvgCycleLength = %d, want 28", got.AvgCycleLength)
	}
	if got.ReliabilityPercent != 50 {
		t.Errorf("ReliabilityPercent = %v, want 50", got.ReliabilityPercent)
	}
	if got.AvgPeriodLength != DefaultPeriodLength {
		t.Errorf("AvgPeriodLength = %d, want default %d", got.AvgPeriodLength, DefaultPeriodLength)
	}
	if !got.NextStartDate.Equal(day("2024-04-26")) {
		t.Errorf("NextStartDate = %s, want 2024-04-26", got.NextStartDate.Format("2006-01-02"))
	}
	if !got.NextEndDate.Equal(day("2024-05-01")) {
		t.Errorf("NextEndDate = %s, want 2024-05-01", got.NextEndDate.Format("2006-01-02"))
	}
}

func TestPredictNextCycleAveragesPeriodLength(t *testing.T) {
	history := []CycleRecord{
		{StartDate: day("2024-06-01"), CycleLength: intPtr(30), PeriodLength: intPtr(4)},
		{StartDate: day("2024-05-02"), CycleLength: intPtr(29), PeriodLength: intPtr(6)},
		{StartDate: day("2024-04-03"), PeriodLength: intPtr(5)},
	}

	got, ok := PredictNextCycle(history)
	if !ok {
		t.Fatal("expected a prediction")
	}
	// (30+29)/2 = 29.5 rounds to 30
	if got.AvgCycleLength != 30 {
		t.Errorf("AvgCycleLength = %d, want 30", got.AvgCycleLength)
	}
	if got.AvgPeriodLength != 5 {
		t.Errorf("AvgPeriodLength = %d, want 5", got.AvgPeriodLength)
	}
	if got.ReliabilityPercent != float64(2)/6*100 {
		t.Errorf("ReliabilityPercent = %v, want %v", got.ReliabilityPercent, float64(2)/6*100)
	}
}

func TestPredictNextCycleUsesOnlyRecentWindow(t *testing.T) {
	start := day("2024-12-01")
	var history []CycleRecord
	for i := 0; i < PredictionWindow; i++ {
		history = append(history, CycleRecord{StartDate: start.AddDate(0, 0, -28*i), CycleLength: intPtr(28)})
	}
	history = append(history, CycleRecord{StartDate: day("2024-01-01"), CycleLength: intPtr(60)})

	got, ok := PredictNextCycle(history)
	if !ok {
		t.Fatal("expected a prediction")
	}
	if got.AvgCycleLength != 28 {
		t.Errorf("AvgCycleLength = %d, want 28 (older cycles ignored)", got.AvgCycleLength)
	}
	if got.ReliabilityPercent != 100 {
		t.Errorf("ReliabilityPercent = %v, want 100", got.ReliabilityPercent)
	}
}

func TestPredictNextCycleIgnoresZeroLengths(t *testing.T) {
	history := []CycleRecord{
		{StartDate: day("2024-03-01"), CycleLength: intPtr(0), PeriodLength: intPtr(0)},
		{StartDate: day("2024-02-01"), CycleLength: intPtr(29)},
	}
	got, ok := PredictNextCycle(history)
	if !ok {
		t.Fatal("expected a prediction")
	}
	if got.AvgCycleLength != 29 || got.AvgPeriodLength != DefaultPeriodLength {
		t.Errorf("averages = %d/%d, want 29/%d", got.AvgCycleLength, got.AvgPeriodLength, DefaultPeriodLength)
	}
}

func TestDaysUntil(t *testing.T) {
	p := CyclePrediction{NextStartDate: day("2024-04-26")}
	now := time.Date(2024, 4, 23, 18, 30, 0, 0, time.UTC)
	if got := DaysUntil(p, now); got != 3 {
		t.Errorf("DaysUntil = %d, want 3", got)
	}
	if got := DaysUntil(p, day("2024-04-28")); got != -2 {
		t.Errorf("DaysUntil = %d, want -2", got)
	}
}
