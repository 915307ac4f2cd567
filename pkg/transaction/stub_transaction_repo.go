package transaction

import (
	"context"
	"sort"
	"time"

	"github.com/finbook/finbook/internal/utils"
)

type ownedTransaction struct {
	userId      int
	transaction Transaction
}

// StubTransactionRepo is an in-memory Repo for tests. A preset CreatedAt is
// honored so tests can place transactions on specific days.
type StubTransactionRepo struct {
	nextId int
	rows   []ownedTransaction
}

func NewStubTransactionRepo() *StubTransactionRepo {
	return &StubTransactionRepo{}
}

func (s *StubTransactionRepo) Store(ctx context.Context, userId int, transaction Transaction) (Transaction, error) {
	s.nextId++
	transaction.Id = s.nextId
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now()
	}
	s.rows = append(s.rows, ownedTransaction{userId, transaction})
	return transaction, nil
}

func (s *StubTransactionRepo) FindPage(ctx context.Context, userId int, offset int, limit int) ([]Transaction, error) {
	owned := s.forUser(userId)
	sort.SliceStable(owned, func(i, j int) bool {
		if owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].Id > owned[j].Id
		}
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	if offset >= len(owned) {
		return []Transaction{}, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], nil
}

func (s *StubTransactionRepo) Count(ctx context.Context, userId int) (int, error) {
	return len(s.forUser(userId)), nil
}

func (s *StubTransactionRepo) SumByKind(ctx context.Context, userId int) (float64, float64, error) {
	var income, expense float64
	for _, t := range s.forUser(userId) {
		switch t.Kind {
		case KindIncome:
			income += t.Amount
		case KindExpense:
			expense += t.Amount
		}
	}
	return income, expense, nil
}

func (s *StubTransactionRepo) DailyTotals(ctx context.Context, userId int, from time.Time, to time.Time) (map[time.Time]DayTotals, error) {
	totals := make(map[time.Time]DayTotals)
	for _, t := range s.forUser(userId) {
		day := utils.DateOf(t.CreatedAt)
		if day.Before(from) || day.After(to) {
			continue
		}
		dt := totals[day]
		switch t.Kind {
		case KindIncome:
			dt.Income += t.Amount
		case KindExpense:
			dt.Expense += t.Amount
		}
		totals[day] = dt
	}
	return totals, nil
}

func (s *StubTransactionRepo) DeleteAllForUser(ctx context.Context, userId int) error {
	kept := s.rows[:0]
	for _, row := range s.rows {
		if row.userId != userId {
			kept = append(kept, row)
		}
	}
	s.rows = kept
	return nil
}

func (s *StubTransactionRepo) forUser(userId int) []Transaction {
	owned := make([]Transaction, 0, len(s.rows))
	for _, row := range s.rows {
		if row.userId == userId {
			owned = append(owned, row.transaction)
		}
	}
	return owned
}

func (s *StubTransactionRepo) Cleanup() {
	s.rows = nil
	s.nextId = 0
}
