package transaction

import (
	"errors"
	"time"
)

var ErrInvalidKind = errors.New("transaction type must be income or expense")

type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Transaction is a single recorded income or expense. Immutable once created;
// it disappears only when its owner is deleted.
type Transaction struct {
	Id          int
	Kind        Kind
	Amount      float64
	Description string
	CreatedAt   time.Time
}

// Totals are an owner's lifetime aggregates.
type Totals struct {
	TotalIncome  float64
	TotalExpense float64
	NetBalance   float64
}

// DayTotals are one calendar day's income and expense sums.
type DayTotals struct {
	Income  float64
	Expense float64
}

// Chart is the 30-day trend: parallel sequences aligned with Labels, oldest
// date first. NetBalance is the running net accumulated across the window.
type Chart struct {
	Labels     []string
	Expense    []float64
	NetBalance []float64
}

// Page is one page of an owner's history, newest first.
type Page struct {
	Items      []Transaction
	Page       int
	TotalPages int
	Total      int
}
