// ABOUTME: Habit progress aggregation over (target, completed) tallies.
// ABOUTME: Per-habit and overall completion percentages plus bounded increment/decrement.
package wellness

// HabitTally is one habit's target and today's completed count.
type HabitTally struct {
	HabitID   string `json:"habit_id"`
	Name      string `json:"name"`
	Target    int    `json:"target"`
	Completed int    `json:"completed"`
}

// HabitProgress is a tally with its derived completion figures.
type HabitProgress struct {
	HabitTally
	Percent float64 `json:"percent"`
	Done    bool    `json:"done"`
}

// HabitSummary aggregates a day's habit progress.
type HabitSummary struct {
	Habits         []HabitProgress `json:"habits"`
	OverallPercent float64         `json:"overall_percent"`
	Completed      int             `json:"completed"`
	Total          int             `json:"total"`
}

// HabitPercent returns completed/target as a percentage capped at 100.
func HabitPercent(completed, target int) float64 {
	if target <= 0 {
		return 0
	}
	return min(100, float64(completed)/float64(target)*100)
}

// OverallPercent returns the sum of completions over the sum of targets, or 0 without targets.
func OverallPercent(tallies []HabitTally) float64 {
	var completed, target int
	for _, t := range tallies {
		completed += t.Completed
		target += t.Target
	}
	if target == 0 {
		return 0
	}
	return float64(completed) / float64(target) * 100
}

// Summarize computes per-habit and overall progress, preserving input order.
func Summarize(tallies []HabitTally) HabitSummary {
	summary := HabitSummary{
		Habits:         make([]HabitProgress, 0, len(tallies)),
		OverallPercent: OverallPercent(tallies),
		Total:          len(tallies),
	}
	for _, t := range tallies {
		done := t.Target > 0 && t.Completed >= t.Target
		if done {
			summary.Completed++
		}
		summary.Habits = append(summary.Habits, HabitProgress{
			HabitTally: t,
			Percent:    HabitPercent(t.Completed, t.Target),
			Done:       done,
		})
	}
	return summary
}

// CanIncrement reports whether another completion fits under the target.
func CanIncrement(completed, target int) bool {
	return completed < target
}

// CanDecrement reports whether there is a completion to remove.
func CanDecrement(completed int) bool {
	return completed > 0
}

// Increment returns completed+1, or completed unchanged at the target.
func Increment(completed, target int) int {
	if !CanIncrement(completed, target) {
		return completed
	}
	return completed + 1
}

// Decrement returns completed-1, or completed unchanged at zero.
func Decrement(completed int) int {
	if !CanDecrement(completed) {
		return completed
	}
	return completed - 1
}
