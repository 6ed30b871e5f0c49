// ABOUTME: Tests for the insurance savings estimator.
// ABOUTME: Covers clamping, defaults, the savings breakdown, and recommendation order.
package wellness

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

func floatPtr(f float64) *float64 { return &f }

func TestRiskReductionClampsAtFifty(t *testing.T) {
	var practices []string
	for i := 0; i < 10; i++ {
		practices = append(practices, fmt.Sprintf("practice %d", i))
	}
	p := InsuranceProfile{
		AgeYears:           30,
		MonthlyPremium:     decimal.NewFromInt(5000),
		LifestylePractices: practices,
		Smoking:            SmokingNever,
		Exercise:           ExerciseRegular,
		BMI:                floatPtr(22),
	}

	got := EstimateSavings(p)
	if got.RiskReductionPercent != 50 {
		t.Errorf("RiskReductionPercent = %d, want 50", got.RiskReductionPercent)
	}
	if got.RiskScore != 10 {
		t.Errorf("RiskScore = %d, want 10", got.RiskScore)
	}
}

func TestRiskReductionFloorsAtZero(t *testing.T) {
	p := InsuranceProfile{
		AgeYears:         60,
		MonthlyPremium:   decimal.NewFromInt(5000),
		HealthConditions: KnownHealthConditions[:5],
		Smoking:          SmokingCurrent,
		Exercise:         ExerciseRarely,
		BMI:              floatPtr(31),
	}

	if got := RiskReduction(p); got != 0 {
		t.Errorf("RiskReduction = %d, want 0", got)
	}
}

func TestRiskReductionSeniorPenaltyNeverNegative(t *testing.T) {
	p := InsuranceProfile{AgeYears: 75, MonthlyPremium: decimal.NewFromInt(1000)}
	if got := RiskReduction(p); got != 0 {
		t.Errorf("RiskReduction = %d, want 0", got)
	}
}

func TestRiskReductionAlwaysInRange(t *testing.T) {
	smoking := []SmokingStatus{"", SmokingNever, SmokingFormer, SmokingRecent, SmokingCurrent}
	exercise := []ExerciseFrequency{"", ExerciseRegular, ExerciseModerate, ExerciseRarely}
	ages := []int{0, 18, 54, 55, 70, 71, 99}
	bmis := []*float64{nil, floatPtr(17), floatPtr(18.5), floatPtr(24.9), floatPtr(30)}

	for _, s := range smoking {
		for _, e := range exercise {
			for _, age := range ages {
				for _, b := range bmis {
					for n := 0; n <= len(KnownLifestylePractices); n++ {
						for c := 0; c <= len(KnownHealthConditions); c += 2 {
							p := InsuranceProfile{
								AgeYears:           age,
								MonthlyPremium:     decimal.NewFromInt(1000),
								LifestylePractices: KnownLifestylePractices[:n],
								HealthConditions:   KnownHealthConditions[:c],
								Smoking:            s,
								Exercise:           e,
								BMI:                b,
							}
							rr := RiskReduction(p)
							if rr < 0 || rr > 50 {
								t.Fatalf("RiskReduction(%+v) = %d, out of [0,50]", p, rr)
							}
						}
					}
				}
			}
		}
	}
}

func TestEstimateSavingsBreakdown(t *testing.T) {
	p := InsuranceProfile{
		MonthlyPremium:     decimal.NewFromInt(10000),
		LifestylePractices: []string{"Weight Management", "Stress Management"},
		Smoking:            SmokingNever,
		Exercise:           ExerciseRegular,
	}

	got := EstimateSavings(p)

	// 2 practices (6) + non-smoker (15) + regular exercise (10) + default age 50 (5);
	// default BMI 25 earns no bonus.
	if got.RiskReductionPercent != 36 {
		t.Fatalf("RiskReductionPercent = %d, want 36", got.RiskReductionPercent)
	}

	checks := []struct {
		name string
		got  decimal.Decimal
		want int64
	}{
		{"monthly", got.MonthlySavings, 3600},
		{"annual", got.AnnualSavings, 43200},
		{"ten year", got.TenYearSavings, 432000},
		{"preventive", got.Healthcare.PreventiveCare, 30000},
		{"medication", got.Healthcare.Medication, 90000},
		{"emergency", got.Healthcare.EmergencyCare, 270000},
		{"total", got.Healthcare.Total, 390000},
	}
	for _, c := range checks {
		if !c.got.Equal(decimal.NewFromInt(c.want)) {
			t.Errorf("%s = %s, want %d", c.name, c.got, c.want)
		}
	}

	if got.RiskScore != 28 {
		t.Errorf("RiskScore = %d, want 28", got.RiskScore)
	}
}

func TestEstimateSavingsMedicationRequiresBoth(t *testing.T) {
	p := InsuranceProfile{
		MonthlyPremium: decimal.NewFromInt(1000),
		Smoking:        SmokingFormer,
		Exercise:       ExerciseModerate,
	}
	got := EstimateSavings(p)
	if !got.Healthcare.Medication.Equal(decimal.NewFromInt(600 * USDToINR)) {
		t.Errorf("Medication = %s, want %d", got.Healthcare.Medication, 600*USDToINR)
	}
}

func TestInsuranceRecommendationsOrder(t *testing.T) {
	p := InsuranceProfile{
		MonthlyPremium:   decimal.NewFromInt(1000),
		HealthConditions: []string{"Diabetes", "Arthritis", "Obesity"},
		Smoking:          SmokingCurrent,
		Exercise:         ExerciseRarely,
	}

	want := []string{
		"Smoking cessation could reduce your premiums by up to 20%",
		"Regular exercise (3+ times per week) could lower costs by 10-15%",
		"Adopting more healthy lifestyle habits could increase your savings",
		"Working with your doctor to manage conditions can help reduce long-term costs",
		"Regular preventive care can catch issues early and reduce emergency costs",
	}

	got := EstimateSavings(p).Recommendations
	if len(got) != len(want) {
		t.Fatalf("got %d recommendations, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Recommendations[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestInsuranceRecommendationsAlwaysEndWithPreventiveCare(t *testing.T) {
	p := InsuranceProfile{
		MonthlyPremium:     decimal.NewFromInt(1000),
		LifestylePractices: KnownLifestylePractices[:4],
		Smoking:            SmokingNever,
		Exercise:           ExerciseRegular,
	}
	got := EstimateSavings(p).Recommendations
	if len(got) != 1 {
		t.Fatalf("got %v, want only the preventive-care tip", got)
	}
}

func TestDuplicatePracticesCountOnce(t *testing.T) {
	p := InsuranceProfile{
		AgeYears:           60,
		MonthlyPremium:     decimal.NewFromInt(1000),
		LifestylePractices: []string{"Weight Management", "weight management ", "Weight Management"},
	}
	if got := RiskReduction(p); got != 3 {
		t.Errorf("RiskReduction = %d, want 3", got)
	}
}

func TestInsuranceProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       InsuranceProfile
		wantErr bool
	}{
		{"valid", InsuranceProfile{AgeYears: 40, MonthlyPremium: decimal.NewFromInt(100)}, false},
		{"missing premium", InsuranceProfile{AgeYears: 40}, true},
		{"negative age", InsuranceProfile{AgeYears: -1, MonthlyPremium: decimal.NewFromInt(100)}, true},
		{"bad smoking", InsuranceProfile{MonthlyPremium: decimal.NewFromInt(100), Smoking: "sometimes"}, true},
		{"bad exercise", InsuranceProfile{MonthlyPremium: decimal.NewFromInt(100), Exercise: "daily"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr != (err != nil) {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Validate() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestParseSmokingStatus(t *testing.T) {
	got, err := ParseSmokingStatus(" Former ")
	if err != nil {
		t.Fatalf("ParseSmokingStatus failed: %v", err)
	}
	if got != SmokingFormer {
		t.Errorf("got %q, want %q", got, SmokingFormer)
	}
	if _, err := ParseSmokingStatus("chain"); err == nil {
		t.Error("expected error for unknown status")
	}
}
