// ABOUTME: BMI classifier with age-banded categories and fixed recommendations.
// ABOUTME: Seniors (65+) use a wider healthy band than the standard adult table.
package wellness

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned by Validate methods when a required field is missing or out of range.
var ErrInvalidInput = errors.New("invalid input")

// SeniorAge is the age at which the senior BMI band applies.
const SeniorAge = 65

// BMICategory is the classification label shown with a BMI value.
type BMICategory string

const (
	// Standard adult band
	CategoryUnderweight BMICategory = "Underweight"
	CategoryNormal      BMICategory = "Normal Weight"
	CategoryOverweight  BMICategory = "Overweight"
	CategoryObese       BMICategory = "Obese"

	// Senior band
	CategorySeniorBelow   BMICategory = "Below Healthy Range"
	CategorySeniorHealthy BMICategory = "Healthy Range for Seniors"
	CategorySeniorAbove   BMICategory = "Above Healthy Range"
)

var bmiRecommendations = map[BMICategory][]string{
	CategoryUnderweight: {
		"Increase calorie intake with nutrient-dense foods",
		"Include protein with every meal",
		"Consider healthy weight gain strategies",
	},
	CategoryNormal: {
		"Maintain current healthy habits",
		"Focus on balanced nutrition",
		"Continue regular physical activity",
	},
	CategoryOverweight: {
		"Focus on portion control",
		"Increase physical activity",
		"Choose whole foods over processed options",
	},
	CategoryObese: {
		"Consult with healthcare provider for weight management plan",
		"Focus on gradual, sustainable changes",
		"Prioritize vegetables and lean proteins",
	},
	CategorySeniorBelow: {
		"Consider increasing protein intake to maintain muscle mass",
		"Include healthy fats like avocados and nuts",
		"Focus on nutrient-dense foods",
		"Consult with a healthcare provider about weight gain strategies",
	},
	CategorySeniorHealthy: {
		"Maintain current eating patterns",
		"Focus on calcium and vitamin D for bone health",
		"Include anti-inflammatory foods",
		"Stay physically active with gentle exercises",
	},
	CategorySeniorAbove: {
		"Focus on portion control and balanced meals",
		"Increase fiber-rich foods for satiety",
		"Consider gentle physical activity like walking",
		"Prioritize lean proteins and vegetables",
	},
}

// BiometricInput holds the values entered on the BMI form.
type BiometricInput struct {
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
	AgeYears int     `json:"age_years"`
}

// Validate reports whether the input can be classified.
func (in BiometricInput) Validate() error {
	if in.HeightCm <= 0 || math.IsNaN(in.HeightCm) || math.IsInf(in.HeightCm, 0) {
		return fmt.Errorf("%w: height must be a positive number of centimeters", ErrInvalidInput)
	}
	if in.WeightKg <= 0 || math.IsNaN(in.WeightKg) || math.IsInf(in.WeightKg, 0) {
		return fmt.Errorf("%w: weight must be a positive number of kilograms", ErrInvalidInput)
	}
	if in.AgeYears < 0 {
		return fmt.Errorf("%w: age must not be negative", ErrInvalidInput)
	}
	return nil
}

// BMIResult is the classified BMI with its recommendations.
type BMIResult struct {
	Value           float64     `json:"value"`
	Category        BMICategory `json:"category"`
	Recommendations []string    `json:"recommendations"`
}

// IsSenior reports whether the senior band applies to age.
func IsSenior(age int) bool {
	return age >= SeniorAge
}

// ComputeBMI returns weight / height(m)^2 without rounding.
func ComputeBMI(heightCm, weightKg float64) float64 {
	h := heightCm / 100.0
	return weightKg / (h * h)
}

// CategoryFor classifies an unrounded BMI value for the given age.
func CategoryFor(bmi float64, age int) BMICategory {
	if IsSenior(age) {
		switch {
		case bmi < 22:
			return CategorySeniorBelow
		case bmi <= 27:
			return CategorySeniorHealthy
		default:
			return CategorySeniorAbove
		}
	}

	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi <= 24.9:
		return CategoryNormal
	case bmi <= 29.9:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

// Recommendations returns a copy of the fixed advice list for a category.
func Recommendations(c BMICategory) []string {
	recs := bmiRecommendations[c]
	out := make([]string, len(recs))
	copy(out, recs)
	return out
}

// ClassifyBMI computes the BMI and its age-appropriate category.
// Callers are expected to Validate the input first.
func ClassifyBMI(in BiometricInput) BMIResult {
	bmi := ComputeBMI(in.HeightCm, in.WeightKg)
	category := CategoryFor(bmi, in.AgeYears)
	return BMIResult{
		Value:           roundTo(bmi, 1),
		Category:        category,
		Recommendations: Recommendations(category),
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
