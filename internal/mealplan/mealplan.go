// ABOUTME: Meal plan suggestions for an age group and dietary preferences.
// ABOUTME: Returns a fixed day of meals plus a shopping list built from its ingredients.
package mealplan

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidRequest is returned when a request cannot produce a plan.
var ErrInvalidRequest = errors.New("invalid meal plan request")

// AgeGroup is one of the supported life stages.
type AgeGroup struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// AgeGroups lists the selectable age groups.
var AgeGroups = []AgeGroup{
	{"13-17", "13-17 years (Teens)"},
	{"18-29", "18-29 years (Young Adults)"},
	{"30-49", "30-49 years (Adults)"},
	{"50-69", "50-69 years (Middle Age)"},
	{"70+", "70+ years (Seniors)"},
}

// DietaryPreferences lists the selectable diet tags.
var DietaryPreferences = []string{
	"Heart-Healthy",
	"Low Sodium",
	"Diabetic-Friendly",
	"High Protein",
	"Anti-Inflammatory",
	"Calcium Rich",
	"Low Cholesterol",
	"Mediterranean",
	"High Fiber",
	"Vegetarian",
	"Weight Management",
	"Athletic Performance",
	"Plant-Based",
	"Gluten-Free",
}

// HealthConditions lists the optional condition tags.
var HealthConditions = []string{
	"Hypertension",
	"Diabetes",
	"High Cholesterol",
	"Arthritis",
	"Osteoporosis",
	"Heart Disease",
	"Kidney Disease",
	"COPD",
	"Depression",
	"Memory Concerns",
	"Food Allergies",
	"Celiac Disease",
	"Sports Injuries",
	"Digestive Issues",
}

// Request is what the user picked.
type Request struct {
	AgeGroup   string   `json:"age_group"`
	Diets      []string `json:"diets"`
	Conditions []string `json:"conditions,omitempty"`
}

// Validate requires a known age group and at least one known diet.
// Conditions are optional but must come from the catalogue.
func (r Request) Validate() error {
	if !slices.ContainsFunc(AgeGroups, func(g AgeGroup) bool { return g.Value == r.AgeGroup }) {
		return fmt.Errorf("%w: unknown age group %q", ErrInvalidRequest, r.AgeGroup)
	}
	if len(r.Diets) == 0 {
		return fmt.Errorf("%w: choose at least one dietary preference", ErrInvalidRequest)
	}
	for _, d := range r.Diets {
		if !slices.Contains(DietaryPreferences, d) {
			return fmt.Errorf("%w: unknown dietary preference %q", ErrInvalidRequest, d)
		}
	}
	for _, c := range r.Conditions {
		if !slices.Contains(HealthConditions, c) {
			return fmt.Errorf("%w: unknown health condition %q", ErrInvalidRequest, c)
		}
	}
	return nil
}

// Meal is one suggested dish.
type Meal struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Nutrition   string   `json:"nutrition"`
	PrepTime    string   `json:"prep_time"`
	Servings    int      `json:"servings"`
}

// Plan is a generated day of meals.
type Plan struct {
	AgeGroup     string   `json:"age_group"`
	Diets        []string `json:"diets"`
	Conditions   []string `json:"conditions,omitempty"`
	Meals        []Meal   `json:"meals"`
	ShoppingList []string `json:"shopping_list"`
}

var sampleMeals = []Meal{
	{
		Type:        "breakfast",
		Name:        "Heart-Healthy Oatmeal Bowl",
		Ingredients: []string{"Steel-cut oats", "Fresh berries", "Chopped walnuts", "Ground flaxseed", "Low-fat milk"},
		Nutrition:   "High in fiber, omega-3s, and antioxidants",
		PrepTime:    "15 mins",
		Servings:    1,
	},
	{
		Type:        "lunch",
		Name:        "Mediterranean Salmon Salad",
		Ingredients: []string{"Grilled salmon", "Mixed greens", "Cherry tomatoes", "Cucumber", "Olive oil", "Lemon"},
		Nutrition:   "Rich in omega-3s, vitamin D, and lean protein",
		PrepTime:    "20 mins",
		Servings:    1,
	},
	{
		Type:        "dinner",
		Name:        "Herb-Roasted Chicken & Vegetables",
		Ingredients: []string{"Lean chicken breast", "Sweet potatoes", "Broccoli", "Carrots", "Herbs", "Olive oil"},
		Nutrition:   "High protein, vitamin A, and fiber",
		PrepTime:    "45 mins",
		Servings:    2,
	},
	{
		Type:        "snack",
		Name:        "Greek Yogurt with Almonds",
		Ingredients: []string{"Plain Greek yogurt", "Sliced almonds", "Honey", "Cinnamon"},
		Nutrition:   "Protein, probiotics, and healthy fats",
		PrepTime:    "5 mins",
		Servings:    1,
	},
}

// Generate validates req and returns the suggested plan.
func Generate(req Request) (*Plan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	meals := make([]Meal, len(sampleMeals))
	for i, m := range sampleMeals {
		m.Ingredients = slices.Clone(m.Ingredients)
		meals[i] = m
	}

	return &Plan{
		AgeGroup:     req.AgeGroup,
		Diets:        slices.Clone(req.Diets),
		Conditions:   slices.Clone(req.Conditions),
		Meals:        meals,
		ShoppingList: ShoppingList(meals),
	}, nil
}

// ShoppingList returns every ingredient once, in first-seen order.
// Duplicates are matched case-insensitively.
func ShoppingList(meals []Meal) []string {
	seen := make(map[string]bool)
	var list []string
	for _, m := range meals {
		for _, ing := range m.Ingredients {
			key := strings.ToLower(strings.TrimSpace(ing))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			list = append(list, ing)
		}
	}
	return list
}
