// ABOUTME: Insurance savings estimator driven by a lifestyle and health questionnaire.
// ABOUTME: Additive risk-reduction model clamped to [0,50], with INR savings figures.
package wellness

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// USDToINR converts the model's base USD healthcare figures into rupees.
const USDToINR = 75

const (
	defaultInsuranceAge = 50
	defaultInsuranceBMI = 25.0
	maxLifestyleBonus   = 25
	maxRiskReduction    = 50
	minRiskScore        = 10
)

// SmokingStatus is the questionnaire's smoking answer.
type SmokingStatus string

const (
	SmokingNever   SmokingStatus = "never"
	SmokingFormer  SmokingStatus = "former"
	SmokingRecent  SmokingStatus = "recent"
	SmokingCurrent SmokingStatus = "current"
)

// ExerciseFrequency is the questionnaire's exercise answer.
type ExerciseFrequency string

const (
	ExerciseRegular  ExerciseFrequency = "regular"
	ExerciseModerate ExerciseFrequency = "moderate"
	ExerciseRarely   ExerciseFrequency = "rarely"
)

// KnownHealthConditions lists the conditions offered on the questionnaire.
var KnownHealthConditions = []string{
	"Diabetes",
	"High Blood Pressure",
	"High Cholesterol",
	"Heart Disease",
	"Obesity",
	"Arthritis",
	"Osteoporosis",
	"Sleep Apnea",
}

// KnownLifestylePractices lists the healthy practices offered on the questionnaire.
var KnownLifestylePractices = []string{
	"Regular Exercise (3+ times/week)",
	"Healthy Diet (Mediterranean/DASH)",
	"Weight Management",
	"Smoking Cessation",
	"Stress Management",
	"Regular Health Screenings",
	"Medication Compliance",
	"Social Engagement",
}

// ParseSmokingStatus validates a smoking answer. Empty is allowed.
func ParseSmokingStatus(s string) (SmokingStatus, error) {
	switch st := SmokingStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case "", SmokingNever, SmokingFormer, SmokingRecent, SmokingCurrent:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown smoking status %q (use never, former, recent, current)", ErrInvalidInput, s)
	}
}

// ParseExerciseFrequency validates an exercise answer. Empty is allowed.
func ParseExerciseFrequency(s string) (ExerciseFrequency, error) {
	switch ef := ExerciseFrequency(strings.ToLower(strings.TrimSpace(s))); ef {
	case "", ExerciseRegular, ExerciseModerate, ExerciseRarely:
		return ef, nil
	default:
		return "", fmt.Errorf("%w: unknown exercise frequency %q (use regular, moderate, rarely)", ErrInvalidInput, s)
	}
}

// InsuranceProfile is the questionnaire input.
// AgeYears of 0 and a nil or zero BMI are treated as absent.
type InsuranceProfile struct {
	AgeYears           int               `json:"age_years"`
	MonthlyPremium     decimal.Decimal   `json:"monthly_premium"`
	HealthConditions   []string          `json:"health_conditions"`
	LifestylePractices []string          `json:"lifestyle_practices"`
	Smoking            SmokingStatus     `json:"smoking_status"`
	Exercise           ExerciseFrequency `json:"exercise_frequency"`
	BMI                *float64          `json:"bmi,omitempty"`
}

// Validate reports whether the profile has the fields required to estimate savings.
func (p InsuranceProfile) Validate() error {
	if !p.MonthlyPremium.IsPositive() {
		return fmt.Errorf("%w: current monthly premium is required", ErrInvalidInput)
	}
	if p.AgeYears < 0 {
		return fmt.Errorf("%w: age must not be negative", ErrInvalidInput)
	}
	if _, err := ParseSmokingStatus(string(p.Smoking)); err != nil {
		return err
	}
	if _, err := ParseExerciseFrequency(string(p.Exercise)); err != nil {
		return err
	}
	if p.BMI != nil && *p.BMI < 0 {
		return fmt.Errorf("%w: bmi must not be negative", ErrInvalidInput)
	}
	return nil
}

func (p InsuranceProfile) age() int {
	if p.AgeYears == 0 {
		return defaultInsuranceAge
	}
	return p.AgeYears
}

func (p InsuranceProfile) bmi() float64 {
	if p.BMI == nil || *p.BMI == 0 {
		return defaultInsuranceBMI
	}
	return *p.BMI
}

func (p InsuranceProfile) nonSmoker() bool {
	return p.Smoking == SmokingNever || p.Smoking == SmokingFormer
}

// HealthcareSavings breaks down estimated annual healthcare cost reductions.
type HealthcareSavings struct {
	PreventiveCare decimal.Decimal `json:"preventive_care"`
	Medication     decimal.Decimal `json:"medication"`
	EmergencyCare  decimal.Decimal `json:"emergency_care"`
	Total          decimal.Decimal `json:"total"`
}

// SavingsResult is the estimator output.
type SavingsResult struct {
	RiskReductionPercent int               `json:"risk_reduction_percent"`
	MonthlySavings       decimal.Decimal   `json:"monthly_savings"`
	AnnualSavings        decimal.Decimal   `json:"annual_savings"`
	TenYearSavings       decimal.Decimal   `json:"ten_year_savings"`
	Healthcare           HealthcareSavings `json:"healthcare_savings"`
	RiskScore            int               `json:"risk_score"`
	Recommendations      []string          `json:"recommendations"`
}

// RiskReduction computes the clamped risk-reduction percentage for a profile.
func RiskReduction(p InsuranceProfile) int {
	practices := countDistinct(p.LifestylePractices)
	conditions := countDistinct(p.HealthConditions)

	rr := min(practices*3, maxLifestyleBonus)
	if p.nonSmoker() {
		rr += 15
	}
	if p.Exercise == ExerciseRegular {
		rr += 10
	}
	if b := p.bmi(); b >= 18.5 && b <= 24.9 {
		rr += 8
	}

	age := p.age()
	if age < 55 {
		rr += 5
	} else if age > 70 {
		rr -= 5
	}

	rr = max(0, rr-conditions*5)
	return min(rr, maxRiskReduction)
}

// EstimateSavings runs the full savings model. Callers are expected to Validate first.
func EstimateSavings(p InsuranceProfile) SavingsResult {
	rr := RiskReduction(p)
	practices := countDistinct(p.LifestylePractices)

	monthly := p.MonthlyPremium.Mul(decimal.NewFromInt(int64(rr))).Div(decimal.NewFromInt(100))
	annual := monthly.Mul(decimal.NewFromInt(12))
	tenYear := annual.Mul(decimal.NewFromInt(10))

	rate := decimal.NewFromInt(USDToINR)
	preventive := decimal.NewFromInt(int64(practices * 200)).Mul(rate)
	medication := decimal.NewFromInt(600).Mul(rate)
	if p.nonSmoker() && p.Exercise == ExerciseRegular {
		medication = decimal.NewFromInt(1200).Mul(rate)
	}
	emergency := decimal.NewFromInt(int64(rr * 100)).Mul(rate)

	return SavingsResult{
		RiskReductionPercent: rr,
		MonthlySavings:       monthly,
		AnnualSavings:        annual,
		TenYearSavings:       tenYear,
		Healthcare: HealthcareSavings{
			PreventiveCare: preventive,
			Medication:     medication,
			EmergencyCare:  emergency,
			Total:          preventive.Add(medication).Add(emergency),
		},
		RiskScore:       max(minRiskScore, 100-rr*2),
		Recommendations: insuranceRecommendations(p),
	}
}

func insuranceRecommendations(p InsuranceProfile) []string {
	var recs []string
	if p.Smoking == SmokingCurrent {
		recs = append(recs, "Smoking cessation could reduce your premiums by up to 20%")
	}
	if p.Exercise == ExerciseRarely {
		recs = append(recs, "Regular exercise (3+ times per week) could lower costs by 10-15%")
	}
	if countDistinct(p.LifestylePractices) < 4 {
		recs = append(recs, "Adopting more healthy lifestyle habits could increase your savings")
	}
	if countDistinct(p.HealthConditions) > 2 {
		recs = append(recs, "Working with your doctor to manage conditions can help reduce long-term costs")
	}
	return append(recs, "Regular preventive care can catch issues early and reduce emergency costs")
}

// countDistinct counts non-blank entries, ignoring case-insensitive duplicates.
func countDistinct(items []string) int {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key := strings.ToLower(strings.TrimSpace(item))
		if key == "" {
			continue
		}
		seen[key] = struct{}{}
	}
	return len(seen)
}
