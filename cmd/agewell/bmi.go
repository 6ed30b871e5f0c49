// ABOUTME: CLI commands for the BMI and insurance savings calculators.
// ABOUTME: Fall back to the profile age when --age is omitted.
package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/agewell/internal/wellness"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	bmiHeight float64
	bmiWeight float64
	bmiAge    int
)

var bmiCmd = &cobra.Command{
	Use:   "bmi",
	Short: "Calculate BMI with an age-appropriate category",
	Long: `Calculate body mass index from height and weight.

Adults 65 and over are classified against senior ranges
(below 22, 22 to 27, above 27). Everyone else uses the standard
bands (18.5, 24.9, 29.9).

EXAMPLES:

  agewell bmi --height 170 --weight 65
  agewell bmi --height 158 --weight 61 --age 72`,
	Annotations: map[string]string{lazyStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		age, err := ageFlag(cmd, bmiAge)
		if err != nil {
			return err
		}
		in := wellness.BiometricInput{HeightCm: bmiHeight, WeightKg: bmiWeight, AgeYears: age}
		if err := in.Validate(); err != nil {
			return err
		}

		res := wellness.ClassifyBMI(in)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "BMI %s  %s\n", color.New(color.Bold).Sprintf("%.1f", res.Value), res.Category)
		printList(out, "Recommendations", res.Recommendations)
		return nil
	},
}

var (
	insAge        int
	insPremium    float64
	insConditions []string
	insPractices  []string
	insSmoking    string
	insExercise   string
	insBMI        float64
)

var insuranceCmd = &cobra.Command{
	Use:     "insurance",
	Aliases: []string{"ins"},
	Short:   "Estimate insurance and healthcare savings",
	Long: `Estimate premium and healthcare savings (INR) from healthy habits.

The risk reduction is an additive model clamped to 0..50 percent.

SMOKING:   never, former, recent, current
EXERCISE:  regular, moderate, rarely

EXAMPLES:

  agewell insurance --premium 5000 --smoking never --exercise regular
  agewell insurance --premium 8000 --age 62 --condition Hypertension \
      --practice "Regular Exercise" --practice "Balanced Diet" --bmi 24`,
	Annotations: map[string]string{lazyStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		age, err := ageFlag(cmd, insAge)
		if err != nil {
			return err
		}
		smoking, err := wellness.ParseSmokingStatus(insSmoking)
		if err != nil {
			return err
		}
		exercise, err := wellness.ParseExerciseFrequency(insExercise)
		if err != nil {
			return err
		}

		p := wellness.InsuranceProfile{
			AgeYears:           age,
			MonthlyPremium:     decimal.NewFromFloat(insPremium),
			HealthConditions:   insConditions,
			LifestylePractices: insPractices,
			Smoking:            smoking,
			Exercise:           exercise,
		}
		if cmd.Flags().Changed("bmi") {
			bmi := insBMI
			p.BMI = &bmi
		}
		if err := p.Validate(); err != nil {
			return err
		}

		res := wellness.EstimateSavings(p)
		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		fmt.Fprintf(out, "Risk reduction  %s\n", bold.Sprintf("%d%%", res.RiskReductionPercent))
		fmt.Fprintf(out, "Monthly savings %s\n", rupees(res.MonthlySavings))
		fmt.Fprintf(out, "Annual savings  %s\n", rupees(res.AnnualSavings))
		fmt.Fprintf(out, "10-year savings %s\n", rupees(res.TenYearSavings))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Healthcare savings (annual)")
		fmt.Fprintf(out, "  Preventive care %s\n", rupees(res.Healthcare.PreventiveCare))
		fmt.Fprintf(out, "  Medication      %s\n", rupees(res.Healthcare.Medication))
		fmt.Fprintf(out, "  Emergency care  %s\n", rupees(res.Healthcare.EmergencyCare))
		fmt.Fprintf(out, "  Total           %s\n", rupees(res.Healthcare.Total))
		fmt.Fprintf(out, "Risk score      %d/100\n", res.RiskScore)
		printList(out, "Recommendations", res.Recommendations)
		return nil
	},
}

// ageFlag returns the --age value, or the profile age when the flag is omitted.
// A missing profile or unreadable storage means no age.
func ageFlag(cmd *cobra.Command, flagValue int) (int, error) {
	if cmd.Flags().Changed("age") {
		if flagValue < 0 {
			return 0, fmt.Errorf("%w: age must not be negative", wellness.ErrInvalidInput)
		}
		return flagValue, nil
	}
	if err := openService(); err != nil {
		logger.WithError(err).Warn("profile unavailable, using no age")
		return 0, nil
	}
	age, ok, err := svc.ProfileAge(time.Now())
	if err != nil || !ok {
		return 0, err
	}
	logger.WithField("age", age).Debug("using profile age")
	return age, nil
}

func rupees(d decimal.Decimal) string {
	return "₹" + d.StringFixed(0)
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	for _, item := range items {
		fmt.Fprintf(w, "  • %s\n", item)
	}
}

func init() {
	bmiCmd.Flags().Float64Var(&bmiHeight, "height", 0, "height in centimeters")
	bmiCmd.Flags().Float64Var(&bmiWeight, "weight", 0, "weight in kilograms")
	bmiCmd.Flags().IntVar(&bmiAge, "age", 0, "age in years (default: profile age)")
	_ = bmiCmd.MarkFlagRequired("height")
	_ = bmiCmd.MarkFlagRequired("weight")

	insuranceCmd.Flags().IntVar(&insAge, "age", 0, "age in years (default: profile age)")
	insuranceCmd.Flags().Float64Var(&insPremium, "premium", 0, "current monthly premium (INR)")
	insuranceCmd.Flags().StringArrayVar(&insConditions, "condition", nil, "existing health condition (repeatable)")
	insuranceCmd.Flags().StringArrayVar(&insPractices, "practice", nil, "healthy lifestyle practice (repeatable)")
	insuranceCmd.Flags().StringVar(&insSmoking, "smoking", "", "smoking status (never, former, recent, current)")
	insuranceCmd.Flags().StringVar(&insExercise, "exercise", "", "exercise frequency (regular, moderate, rarely)")
	insuranceCmd.Flags().Float64Var(&insBMI, "bmi", 0, "body mass index")
	_ = insuranceCmd.MarkFlagRequired("premium")

	rootCmd.AddCommand(bmiCmd)
	rootCmd.AddCommand(insuranceCmd)
}
