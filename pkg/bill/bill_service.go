package bill

import (
	"context"
	"fmt"

	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, bill Bill) (Bill, error)
	// List returns all bills with derived due dates, plus the subset due
	// within the reminder window.
	List(ctx context.Context) (all []WithNextDue, upcoming []WithNextDue, err error)
	MarkPaid(ctx context.Context, billId int) error
	Delete(ctx context.Context, billId int) error
}

type ServiceImpl struct {
	repo  Repo
	clock utils.Clock
}

func NewBillService(repo Repo, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) Create(ctx context.Context, bill Bill) (Bill, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Bill{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if bill.AnchorDate.IsZero() {
		// Unparseable or missing dates fall back to today; requests are not
		// rejected for this.
		bill.AnchorDate = utils.DateOf(s.clock.Now())
	}
	if bill.Period == "" {
		bill.Period = PeriodMonthly
	}
	if bill.Priority == 0 {
		bill.Priority = PriorityMedium
	}
	return s.repo.Store(ctx, userId, bill)
}

func (s *ServiceImpl) List(ctx context.Context) ([]WithNextDue, []WithNextDue, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get current user: %w", err)
	}
	bills, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		return nil, nil, err
	}

	today := utils.DateOf(s.clock.Now())
	all := make([]WithNextDue, 0, len(bills))
	upcoming := make([]WithNextDue, 0, len(bills))
	for _, b := range bills {
		due := WithNextDue{Bill: b, NextDue: NextDue(b.AnchorDate, b.Period, today)}
		all = append(all, due)
		if !b.IsPaid && IsUpcoming(due.NextDue, today) {
			upcoming = append(upcoming, due)
		}
	}
	return all, upcoming, nil
}

func (s *ServiceImpl) MarkPaid(ctx context.Context, billId int) error {
	if err := s.authorize(ctx, billId); err != nil {
		return err
	}
	return s.repo.MarkPaid(ctx, billId)
}

func (s *ServiceImpl) Delete(ctx context.Context, billId int) error {
	if err := s.authorize(ctx, billId); err != nil {
		return err
	}
	return s.repo.Delete(ctx, billId)
}

func (s *ServiceImpl) authorize(ctx context.Context, billId int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	_, ownerId, err := s.repo.Get(ctx, billId)
	if err != nil {
		return err
	}
	if ownerId != userId {
		log.Warnf("user %d attempted to modify bill %d owned by user %d", userId, billId, ownerId)
		return ErrNotOwner
	}
	return nil
}
