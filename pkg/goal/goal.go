package goal

import (
	"errors"
	"time"
)

var (
	ErrGoalNotFound  = errors.New("saving goal not found")
	ErrNotOwner      = errors.New("saving goal belongs to another user")
	ErrInvalidMonth  = errors.New("no contribution slot for that month")
	ErrInvalidMonths = errors.New("target months must be at least 1")
)

// SavingGoal is a commitment to save a target amount over a number of months.
// Its contribution slots (one per month index 1..TargetMonths) are created
// together with the goal.
type SavingGoal struct {
	Id            int
	Name          string
	TargetAmount  float64
	TargetMonths  int
	CommittedAt   time.Time
	CreatedAt     time.Time
	Contributions []SavingContribution
}

// SavingContribution is one month's slot of a goal. RecordedAt stays nil until
// the month is contributed.
type SavingContribution struct {
	Id                int
	MonthIndex        int
	Contributed       bool
	ContributedAmount float64
	RecordedAt        *time.Time
}

// MonthlyAmount is the fixed per-month contribution. The max guard keeps a
// pathological zero-month goal from dividing by zero.
func (g SavingGoal) MonthlyAmount() float64 {
	months := g.TargetMonths
	if months < 1 {
		months = 1
	}
	return g.TargetAmount / float64(months)
}
