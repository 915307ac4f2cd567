package bill

import (
	"context"
	"sort"
	"time"
)

type ownedBill struct {
	userId int
	bill   Bill
}

// StubBillRepo is an in-memory Repo for tests.
type StubBillRepo struct {
	nextId int
	rows   map[int]ownedBill
}

func NewStubBillRepo() *StubBillRepo {
	return &StubBillRepo{rows: map[int]ownedBill{}}
}

func (s *StubBillRepo) Store(ctx context.Context, userId int, bill Bill) (Bill, error) {
	s.nextId++
	bill.Id = s.nextId
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now()
	}
	s.rows[bill.Id] = ownedBill{userId, bill}
	return bill, nil
}

func (s *StubBillRepo) GetAll(ctx context.Context, userId int) ([]Bill, error) {
	bills := make([]Bill, 0, len(s.rows))
	for _, row := range s.rows {
		if row.userId == userId {
			bills = append(bills, row.bill)
		}
	}
	sort.Slice(bills, func(i, j int) bool {
		if bills[i].Priority != bills[j].Priority {
			return bills[i].Priority < bills[j].Priority
		}
		return bills[i].AnchorDate.Before(bills[j].AnchorDate)
	})
	return bills, nil
}

func (s *StubBillRepo) Get(ctx context.Context, billId int) (Bill, int, error) {
	row, ok := s.rows[billId]
	if !ok {
		return Bill{}, 0, ErrBillNotFound
	}
	return row.bill, row.userId, nil
}

func (s *StubBillRepo) MarkPaid(ctx context.Context, billId int) error {
	row, ok := s.rows[billId]
	if !ok {
		return ErrBillNotFound
	}
	row.bill.IsPaid = true
	s.rows[billId] = row
	return nil
}

func (s *StubBillRepo) Delete(ctx context.Context, billId int) error {
	if _, ok := s.rows[billId]; !ok {
		return ErrBillNotFound
	}
	delete(s.rows, billId)
	return nil
}

func (s *StubBillRepo) DeleteAllForUser(ctx context.Context, userId int) error {
	for id, row := range s.rows {
		if row.userId == userId {
			delete(s.rows, id)
		}
	}
	return nil
}

func (s *StubBillRepo) Cleanup() {
	s.rows = map[int]ownedBill{}
	s.nextId = 0
}
