package bill

import (
	"errors"
	"time"
)

var (
	ErrBillNotFound = errors.New("bill not found")
	ErrNotOwner     = errors.New("bill belongs to another user")
)

const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

// Bill is a recurring obligation. AnchorDate is the origin of the recurrence;
// the next due date is always derived from it, never stored.
type Bill struct {
	Id         int
	BillType   string
	Amount     float64
	AnchorDate time.Time
	Period     Period
	Priority   int
	IsPaid     bool
	CreatedAt  time.Time
}

// WithNextDue pairs a bill with its computed next due date.
type WithNextDue struct {
	Bill
	NextDue time.Time
}
