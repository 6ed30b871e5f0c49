// ABOUTME: Upcoming-period reminders derived from the cycle prediction.
// ABOUTME: Decides when a reminder is due and formats its message.
package reminder

import (
	"fmt"
	"time"

	"github.com/harperreed/agewell/internal/models"
	"github.com/harperreed/agewell/internal/wellness"
)

// Reminder is a due notice about the next predicted period.
type Reminder struct {
	Prediction wellness.CyclePrediction
	DaysUntil  int
}

// Subject is a one-line summary suitable for an email subject.
func (r Reminder) Subject() string {
	switch r.DaysUntil {
	case 0:
		return "AGE-WELL: your period is expected today"
	case 1:
		return "AGE-WELL: your period is expected tomorrow"
	default:
		return fmt.Sprintf("AGE-WELL: your period is expected in %d days", r.DaysUntil)
	}
}

// Body is the full reminder text.
func (r Reminder) Body() string {
	p := r.Prediction
	return fmt.Sprintf(
		"Your next period is predicted to start on %s and end around %s.\n"+
			"Average cycle: %d days. Average period: %d days. Prediction reliability: %.0f%%.\n",
		p.NextStartDate.Format(models.DateFormat),
		p.NextEndDate.Format(models.DateFormat),
		p.AvgCycleLength, p.AvgPeriodLength, p.ReliabilityPercent,
	)
}

// Check returns a reminder when the predicted start is between 0 and leadDays
// calendar days after now.
func Check(p wellness.CyclePrediction, now time.Time, leadDays int) (Reminder, bool) {
	days := wellness.DaysUntil(p, now)
	if days < 0 || days > leadDays {
		return Reminder{}, false
	}
	return Reminder{Prediction: p, DaysUntil: days}, true
}
