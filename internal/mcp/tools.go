// ABOUTME: MCP tool implementations for the wellness calculators and records.
// ABOUTME: Covers BMI, insurance, habits, cycles, meal plans, and the nutrition assistant.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/agewell/internal/assistant"
	"github.com/harperreed/agewell/internal/mealplan"
	"github.com/harperreed/agewell/internal/models"
	"github.com/harperreed/agewell/internal/tracker"
	"github.com/harperreed/agewell/internal/wellness"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shopspring/decimal"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "calculate_bmi",
		Description: "Calculate BMI with an age-appropriate category and recommendations",
	}, s.handleCalculateBMI)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "estimate_insurance_savings",
		Description: "Estimate insurance and healthcare savings (INR) from health and lifestyle answers",
	}, s.handleEstimateInsurance)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_habits",
		Description: "List tracked habits with their daily targets",
	}, s.handleListHabits)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_habit",
		Description: "Create a new daily habit",
	}, s.handleAddHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_habit",
		Description: "Delete a habit and all its completions",
	}, s.handleDeleteHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "increment_habit",
		Description: "Record one completion of a habit for a day (no-op at the target)",
	}, s.handleIncrementHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "decrement_habit",
		Description: "Undo the most recent completion of a habit for a day",
	}, s.handleDecrementHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "habit_progress",
		Description: "Per-habit and overall completion for a day",
	}, s.handleHabitProgress)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_cycle",
		Description: "Log a menstrual cycle with optional end date, symptoms, mood, and notes",
	}, s.handleLogCycle)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_cycles",
		Description: "List logged cycles, most recent first",
	}, s.handleListCycles)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_cycle",
		Description: "Delete a logged cycle by ID or ID prefix",
	}, s.handleDeleteCycle)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "predict_cycle",
		Description: "Predict the next cycle from the six most recent cycles",
	}, s.handlePredictCycle)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "meal_plan",
		Description: "Suggest a day of meals and a shopping list for an age group and diet",
	}, s.handleMealPlan)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "ask_assistant",
		Description: "Ask the nutrition assistant a question",
	}, s.handleAskAssistant)
}

// Tool input/output types

type bmiInput struct {
	HeightCm float64 `json:"height_cm" jsonschema:"Height in centimeters"`
	WeightKg float64 `json:"weight_kg" jsonschema:"Weight in kilograms"`
	AgeYears int     `json:"age_years,omitempty" jsonschema:"Age in years, defaults to the profile age"`
}

type bmiOutput struct {
	BMI             float64  `json:"bmi"`
	Category        string   `json:"category"`
	Recommendations []string `json:"recommendations"`
	Message         string   `json:"message"`
}

type insuranceInput struct {
	AgeYears           int      `json:"age_years,omitempty" jsonschema:"Age in years, defaults to the profile age"`
	MonthlyPremium     float64  `json:"monthly_premium" jsonschema:"Current monthly premium in INR"`
	HealthConditions   []string `json:"health_conditions,omitempty" jsonschema:"Existing health conditions"`
	LifestylePractices []string `json:"lifestyle_practices,omitempty" jsonschema:"Healthy lifestyle practices followed"`
	SmokingStatus      string   `json:"smoking_status,omitempty" jsonschema:"never, former, recent, or current"`
	ExerciseFrequency  string   `json:"exercise_frequency,omitempty" jsonschema:"regular, moderate, or rarely"`
	BMI                float64  `json:"bmi,omitempty" jsonschema:"Body mass index"`
}

type insuranceOutput struct {
	RiskReductionPercent int      `json:"risk_reduction_percent"`
	MonthlySavings       string   `json:"monthly_savings"`
	AnnualSavings        string   `json:"annual_savings"`
	TenYearSavings       string   `json:"ten_year_savings"`
	PreventiveCare       string   `json:"preventive_care_savings"`
	Medication           string   `json:"medication_savings"`
	EmergencyCare        string   `json:"emergency_care_savings"`
	TotalHealthcare      string   `json:"total_healthcare_savings"`
	RiskScore            int      `json:"risk_score"`
	Recommendations      []string `json:"recommendations"`
}

type habitOutput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Target   int    `json:"target"`
	Category string `json:"category,omitempty"`
}

type listHabitsOutput struct {
	Habits []habitOutput `json:"habits"`
}

type addHabitInput struct {
	Name     string `json:"name" jsonschema:"Habit name"`
	Target   int    `json:"target" jsonschema:"Completions per day, at least 1"`
	Category string `json:"category,omitempty" jsonschema:"Optional category (hydration, fitness, nutrition, ...)"`
}

type habitIDInput struct {
	ID   string `json:"id" jsonschema:"Habit ID or prefix"`
	Date string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
}

type habitChangeOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Completed int    `json:"completed"`
	Target    int    `json:"target"`
	Changed   bool   `json:"changed"`
	Message   string `json:"message"`
}

type dateInput struct {
	Date string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
}

type logCycleInput struct {
	StartDate    string   `json:"start_date" jsonschema:"Period start date as YYYY-MM-DD"`
	EndDate      string   `json:"end_date,omitempty" jsonschema:"Cycle end date as YYYY-MM-DD"`
	PeriodLength int      `json:"period_length,omitempty" jsonschema:"Period length in days"`
	Symptoms     []string `json:"symptoms,omitempty" jsonschema:"Symptoms such as Cramps, Bloating, Headache"`
	Mood         string   `json:"mood,omitempty" jsonschema:"Mood such as Happy, Calm, Tired"`
	Notes        string   `json:"notes,omitempty" jsonschema:"Free-form notes"`
}

type cycleOutput struct {
	ID           string   `json:"id"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date,omitempty"`
	CycleLength  int      `json:"cycle_length,omitempty"`
	PeriodLength int      `json:"period_length,omitempty"`
	Symptoms     []string `json:"symptoms,omitempty"`
	Mood         string   `json:"mood,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

type listCyclesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 12)"`
}

type listCyclesOutput struct {
	Cycles []cycleOutput `json:"cycles"`
}

type deleteInput struct {
	ID string `json:"id" jsonschema:"ID or prefix"`
}

type predictionOutput struct {
	Available          bool    `json:"available"`
	NextStartDate      string  `json:"next_start_date,omitempty"`
	NextEndDate        string  `json:"next_end_date,omitempty"`
	AvgCycleLength     int     `json:"avg_cycle_length,omitempty"`
	AvgPeriodLength    int     `json:"avg_period_length,omitempty"`
	ReliabilityPercent float64 `json:"reliability_percent,omitempty"`
	DaysUntil          int     `json:"days_until,omitempty"`
	Message            string  `json:"message"`
}

type mealPlanInput struct {
	AgeGroup   string   `json:"age_group" jsonschema:"13-17, 18-29, 30-49, 50-69, or 70+"`
	Diets      []string `json:"diets" jsonschema:"Dietary preferences such as Heart-Healthy or Mediterranean"`
	Conditions []string `json:"conditions,omitempty" jsonschema:"Optional health conditions"`
}

type askInput struct {
	Question string `json:"question" jsonschema:"Nutrition or wellness question"`
}

type askOutput struct {
	Answer  string `json:"answer"`
	Topic   string `json:"topic,omitempty"`
	Matched bool   `json:"matched"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

func toHabitOutput(h *models.Habit) habitOutput {
	out := habitOutput{ID: h.ID.String()[:8], Name: h.Name, Target: h.TargetFrequency}
	if h.Category != nil {
		out.Category = *h.Category
	}
	return out
}

func toCycleOutput(c *models.Cycle) cycleOutput {
	out := cycleOutput{
		ID:        c.ID.String()[:8],
		StartDate: c.StartDate.Format(models.DateFormat),
		Symptoms:  c.Symptoms,
	}
	if c.EndDate != nil {
		out.EndDate = c.EndDate.Format(models.DateFormat)
	}
	if c.CycleLength != nil {
		out.CycleLength = *c.CycleLength
	}
	if c.PeriodLength != nil {
		out.PeriodLength = *c.PeriodLength
	}
	if c.Mood != nil {
		out.Mood = *c.Mood
	}
	if c.Notes != nil {
		out.Notes = *c.Notes
	}
	return out
}

func (s *Server) parseDay(raw string) (time.Time, error) {
	if raw == "" {
		return s.today(), nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", raw)
	}
	return d, nil
}

func (s *Server) defaultAge(age int) (int, error) {
	if age != 0 {
		return age, nil
	}
	profileAge, ok, err := s.svc.ProfileAge(s.now())
	if err != nil || !ok {
		return 0, err
	}
	return profileAge, nil
}

// Tool handlers

func (s *Server) handleCalculateBMI(ctx context.Context, req *mcp.CallToolRequest, input bmiInput) (*mcp.CallToolResult, bmiOutput, error) {
	age, err := s.defaultAge(input.AgeYears)
	if err != nil {
		return nil, bmiOutput{}, err
	}
	in := wellness.BiometricInput{HeightCm: input.HeightCm, WeightKg: input.WeightKg, AgeYears: age}
	if err := in.Validate(); err != nil {
		return nil, bmiOutput{}, err
	}

	res := wellness.ClassifyBMI(in)
	return nil, bmiOutput{
		BMI:             res.Value,
		Category:        string(res.Category),
		Recommendations: res.Recommendations,
		Message:         fmt.Sprintf("BMI %.1f (%s)", res.Value, res.Category),
	}, nil
}

func (s *Server) handleEstimateInsurance(ctx context.Context, req *mcp.CallToolRequest, input insuranceInput) (*mcp.CallToolResult, insuranceOutput, error) {
	age, err := s.defaultAge(input.AgeYears)
	if err != nil {
		return nil, insuranceOutput{}, err
	}
	smoking, err := wellness.ParseSmokingStatus(input.SmokingStatus)
	if err != nil {
		return nil, insuranceOutput{}, err
	}
	exercise, err := wellness.ParseExerciseFrequency(input.ExerciseFrequency)
	if err != nil {
		return nil, insuranceOutput{}, err
	}

	p := wellness.InsuranceProfile{
		AgeYears:           age,
		MonthlyPremium:     decimal.NewFromFloat(input.MonthlyPremium),
		HealthConditions:   input.HealthConditions,
		LifestylePractices: input.LifestylePractices,
		Smoking:            smoking,
		Exercise:           exercise,
	}
	if input.BMI != 0 {
		bmi := input.BMI
		p.BMI = &bmi
	}
	if err := p.Validate(); err != nil {
		return nil, insuranceOutput{}, err
	}

	res := wellness.EstimateSavings(p)
	return nil, insuranceOutput{
		RiskReductionPercent: res.RiskReductionPercent,
		MonthlySavings:       res.MonthlySavings.StringFixed(0),
		AnnualSavings:        res.AnnualSavings.StringFixed(0),
		TenYearSavings:       res.TenYearSavings.StringFixed(0),
		PreventiveCare:       res.Healthcare.PreventiveCare.StringFixed(0),
		Medication:           res.Healthcare.Medication.StringFixed(0),
		EmergencyCare:        res.Healthcare.EmergencyCare.StringFixed(0),
		TotalHealthcare:      res.Healthcare.Total.StringFixed(0),
		RiskScore:            res.RiskScore,
		Recommendations:      res.Recommendations,
	}, nil
}

func (s *Server) handleListHabits(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, listHabitsOutput, error) {
	habits, err := s.svc.Habits()
	if err != nil {
		return nil, listHabitsOutput{}, err
	}
	out := listHabitsOutput{Habits: make([]habitOutput, 0, len(habits))}
	for _, h := range habits {
		out.Habits = append(out.Habits, toHabitOutput(h))
	}
	return nil, out, nil
}

func (s *Server) handleAddHabit(ctx context.Context, req *mcp.CallToolRequest, input addHabitInput) (*mcp.CallToolResult, habitOutput, error) {
	h, err := s.svc.AddHabit(input.Name, input.Target, input.Category)
	if err != nil {
		return nil, habitOutput{}, err
	}
	return nil, toHabitOutput(h), nil
}

func (s *Server) handleDeleteHabit(ctx context.Context, req *mcp.CallToolRequest, input deleteInput) (*mcp.CallToolResult, simpleOutput, error) {
	h, err := s.svc.DeleteHabit(input.ID)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted habit: %s", h.Name)}, nil
}

func (s *Server) handleIncrementHabit(ctx context.Context, req *mcp.CallToolRequest, input habitIDInput) (*mcp.CallToolResult, habitChangeOutput, error) {
	return s.changeHabit(input, s.svc.Increment, "target already reached")
}

func (s *Server) handleDecrementHabit(ctx context.Context, req *mcp.CallToolRequest, input habitIDInput) (*mcp.CallToolResult, habitChangeOutput, error) {
	return s.changeHabit(input, s.svc.Decrement, "nothing to undo")
}

func (s *Server) changeHabit(input habitIDInput, change func(string, time.Time) (tracker.HabitChange, error), unchanged string) (*mcp.CallToolResult, habitChangeOutput, error) {
	day, err := s.parseDay(input.Date)
	if err != nil {
		return nil, habitChangeOutput{}, err
	}
	ch, err := change(input.ID, day)
	if err != nil {
		return nil, habitChangeOutput{}, err
	}

	msg := fmt.Sprintf("%s: %d/%d", ch.Habit.Name, ch.Completed, ch.Habit.TargetFrequency)
	if !ch.Changed {
		msg += " (" + unchanged + ")"
	}
	return nil, habitChangeOutput{
		ID:        ch.Habit.ID.String()[:8],
		Name:      ch.Habit.Name,
		Completed: ch.Completed,
		Target:    ch.Habit.TargetFrequency,
		Changed:   ch.Changed,
		Message:   msg,
	}, nil
}

func (s *Server) handleHabitProgress(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, wellness.HabitSummary, error) {
	day, err := s.parseDay(input.Date)
	if err != nil {
		return nil, wellness.HabitSummary{}, err
	}
	summary, err := s.svc.Progress(day)
	if err != nil {
		return nil, wellness.HabitSummary{}, err
	}
	return nil, summary, nil
}

func (s *Server) handleLogCycle(ctx context.Context, req *mcp.CallToolRequest, input logCycleInput) (*mcp.CallToolResult, cycleOutput, error) {
	start, err := models.ParseDate(input.StartDate)
	if err != nil {
		return nil, cycleOutput{}, fmt.Errorf("invalid start_date %q (use YYYY-MM-DD)", input.StartDate)
	}
	c := models.NewCycle(start).
		WithSymptoms(input.Symptoms).
		WithMood(input.Mood).
		WithNotes(input.Notes)
	if input.EndDate != "" {
		end, err := models.ParseDate(input.EndDate)
		if err != nil {
			return nil, cycleOutput{}, fmt.Errorf("invalid end_date %q (use YYYY-MM-DD)", input.EndDate)
		}
		c.WithEndDate(end)
	}
	if input.PeriodLength != 0 {
		c.WithPeriodLength(input.PeriodLength)
	}

	if err := s.svc.LogCycle(c); err != nil {
		return nil, cycleOutput{}, err
	}
	return nil, toCycleOutput(c), nil
}

func (s *Server) handleListCycles(ctx context.Context, req *mcp.CallToolRequest, input listCyclesInput) (*mcp.CallToolResult, listCyclesOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 12
	}
	cycles, err := s.svc.Cycles(input.Limit)
	if err != nil {
		return nil, listCyclesOutput{}, err
	}
	out := listCyclesOutput{Cycles: make([]cycleOutput, 0, len(cycles))}
	for _, c := range cycles {
		out.Cycles = append(out.Cycles, toCycleOutput(c))
	}
	return nil, out, nil
}

func (s *Server) handleDeleteCycle(ctx context.Context, req *mcp.CallToolRequest, input deleteInput) (*mcp.CallToolResult, simpleOutput, error) {
	c, err := s.svc.DeleteCycle(input.ID)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted cycle starting %s", c.StartDate.Format(models.DateFormat))}, nil
}

func (s *Server) handlePredictCycle(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, predictionOutput, error) {
	out, err := s.prediction()
	return nil, out, err
}

func (s *Server) prediction() (predictionOutput, error) {
	p, ok, err := s.svc.Prediction()
	if err != nil {
		return predictionOutput{}, err
	}
	if !ok {
		return predictionOutput{Message: "Log at least one cycle with an end date to see predictions."}, nil
	}
	days := wellness.DaysUntil(p, s.now())
	return predictionOutput{
		Available:          true,
		NextStartDate:      p.NextStartDate.Format(models.DateFormat),
		NextEndDate:        p.NextEndDate.Format(models.DateFormat),
		AvgCycleLength:     p.AvgCycleLength,
		AvgPeriodLength:    p.AvgPeriodLength,
		ReliabilityPercent: p.ReliabilityPercent,
		DaysUntil:          days,
		Message:            fmt.Sprintf("Next period expected %s (in %d days)", p.NextStartDate.Format(models.DateFormat), days),
	}, nil
}

func (s *Server) handleMealPlan(ctx context.Context, req *mcp.CallToolRequest, input mealPlanInput) (*mcp.CallToolResult, *mealplan.Plan, error) {
	plan, err := mealplan.Generate(mealplan.Request{
		AgeGroup:   input.AgeGroup,
		Diets:      input.Diets,
		Conditions: input.Conditions,
	})
	if err != nil {
		return nil, nil, err
	}
	return nil, plan, nil
}

func (s *Server) handleAskAssistant(ctx context.Context, req *mcp.CallToolRequest, input askInput) (*mcp.CallToolResult, askOutput, error) {
	reply, err := assistant.NewConversation().Send(input.Question)
	if err != nil {
		return nil, askOutput{}, err
	}
	topic, ok := assistant.Match(input.Question)
	return nil, askOutput{Answer: reply.Text, Topic: topic.Keyword, Matched: ok}, nil
}
