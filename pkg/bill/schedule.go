package bill

import "time"

// Period is a bill's recurrence unit. Each period maps to a fixed day-count
// step rather than calendar arithmetic: stored data and the JS frontend were
// built around these exact counts, so a calendar-aware "monthly" would shift
// every derived due date.
type Period string

const (
	PeriodDaily     Period = "daily"
	PeriodWeekly    Period = "weekly"
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

var periodStepDays = map[Period]int{
	PeriodDaily:     1,
	PeriodWeekly:    7,
	PeriodMonthly:   30,
	PeriodQuarterly: 90,
	PeriodYearly:    365,
}

// StepDays returns the period's fixed step in days. Unknown periods fall back
// to the monthly step.
func (p Period) StepDays() int {
	if step, ok := periodStepDays[p]; ok {
		return step
	}
	return periodStepDays[PeriodMonthly]
}

// upcomingWindowDays is how far ahead a due date may be for the bill to be
// surfaced as a reminder. A bill due today (0 days) counts.
const upcomingWindowDays = 5

// NextDue computes the next occurrence of a bill on or after today. An anchor
// on or after today is returned unchanged; otherwise a cursor advances from
// the anchor in fixed steps until it reaches today. Both inputs must be
// midnight-normalized dates.
func NextDue(anchor time.Time, period Period, today time.Time) time.Time {
	if !anchor.Before(today) {
		return anchor
	}
	step := period.StepDays()
	due := anchor
	for due.Before(today) {
		due = due.AddDate(0, 0, step)
	}
	return due
}

// IsUpcoming reports whether a due date falls within the reminder window
// [today, today+5d].
func IsUpcoming(nextDue time.Time, today time.Time) bool {
	days := int(nextDue.Sub(today).Hours() / 24)
	return days >= 0 && days <= upcomingWindowDays
}
