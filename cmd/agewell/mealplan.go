// ABOUTME: CLI command for meal plan suggestions.
// ABOUTME: Prints a day of meals and a shopping list.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/agewell/internal/mealplan"
	"github.com/spf13/cobra"
)

var (
	mealAgeGroup   string
	mealDiets      []string
	mealConditions []string
)

func mealPlanLong() string {
	var b strings.Builder
	b.WriteString("Suggest a day of meals for an age group and dietary preferences.\n\nAGE GROUPS:\n\n")
	for _, g := range mealplan.AgeGroups {
		fmt.Fprintf(&b, "  %-7s %s\n", g.Value, g.Label)
	}
	b.WriteString("\nDIETS:\n\n  " + strings.Join(mealplan.DietaryPreferences, ", ") + "\n")
	b.WriteString("\nCONDITIONS:\n\n  " + strings.Join(mealplan.HealthConditions, ", ") + "\n")
	b.WriteString(`
EXAMPLES:

  agewell meal-plan --age-group 50-69 --diet Heart-Healthy
  agewell meal-plan --age-group 70+ --diet "Low Sodium" --condition Hypertension`)
	return b.String()
}

var mealPlanCmd = &cobra.Command{
	Use:         "meal-plan",
	Aliases:     []string{"meals"},
	Short:       "Suggest a meal plan",
	Long:        mealPlanLong(),
	Annotations: map[string]string{lazyStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := mealplan.Generate(mealplan.Request{
			AgeGroup:   mealAgeGroup,
			Diets:      mealDiets,
			Conditions: mealConditions,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		fmt.Fprintf(out, "Meal plan for %s · %s\n", plan.AgeGroup, strings.Join(plan.Diets, ", "))
		if len(plan.Conditions) > 0 {
			fmt.Fprintf(out, "%s\n", faint.Sprintf("Considering: %s", strings.Join(plan.Conditions, ", ")))
		}
		for _, m := range plan.Meals {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%s  %s\n", bold.Sprint(strings.ToUpper(m.Type)), m.Name)
			fmt.Fprintf(out, "  %s\n", strings.Join(m.Ingredients, ", "))
			fmt.Fprintf(out, "  %s\n", faint.Sprintf("%s · %s · serves %d", m.Nutrition, m.PrepTime, m.Servings))
		}
		printList(out, "Shopping list", plan.ShoppingList)
		return nil
	},
}

func init() {
	mealPlanCmd.Flags().StringVarP(&mealAgeGroup, "age-group", "a", "", "age group (13-17, 18-29, 30-49, 50-69, 70+)")
	mealPlanCmd.Flags().StringArrayVarP(&mealDiets, "diet", "d", nil, "dietary preference (repeatable)")
	mealPlanCmd.Flags().StringArrayVar(&mealConditions, "condition", nil, "health condition (repeatable)")
	rootCmd.AddCommand(mealPlanCmd)
}
