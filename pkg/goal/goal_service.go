package goal

import (
	"context"
	"fmt"

	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, goal SavingGoal) (SavingGoal, error)
	List(ctx context.Context) ([]SavingGoal, error)
	// Contribute records the month's contribution and returns the amount.
	// Re-contributing an already-contributed month overwrites the amount and
	// timestamp; there is deliberately no idempotency guard.
	Contribute(ctx context.Context, goalId int, monthIndex int) (float64, error)
}

type ServiceImpl struct {
	repo  Repo
	clock utils.Clock
}

func NewGoalService(repo Repo, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) Create(ctx context.Context, goal SavingGoal) (SavingGoal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return SavingGoal{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if goal.TargetMonths < 1 {
		return SavingGoal{}, ErrInvalidMonths
	}
	created, err := s.repo.Store(ctx, userId, goal)
	if err != nil {
		return SavingGoal{}, err
	}
	log.Infof("created saving goal %q: %v over %d months", created.Name, created.TargetAmount, created.TargetMonths)
	return created, nil
}

func (s *ServiceImpl) List(ctx context.Context) ([]SavingGoal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) Contribute(ctx context.Context, goalId int, monthIndex int) (float64, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}
	g, ownerId, err := s.repo.Get(ctx, goalId)
	if err != nil {
		return 0, err
	}
	if ownerId != userId {
		log.Warnf("user %d attempted to contribute to goal %d owned by user %d", userId, goalId, ownerId)
		return 0, ErrNotOwner
	}

	amount := g.MonthlyAmount()
	if err := s.repo.Contribute(ctx, goalId, monthIndex, amount, s.clock.Now()); err != nil {
		return 0, err
	}
	return amount, nil
}
