package goal

import (
	"context"
	"testing"
	"time"

	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGoalService(now time.Time) (*ServiceImpl, *StubGoalRepo, *utils.MockClock) {
	repo := NewStubGoalRepo()
	clock := &utils.MockClock{FixedNow: now}
	return NewGoalService(repo, clock), repo, clock
}

func TestGoalService_Create(t *testing.T) {
	ctx := user.WithUser(context.Background(), user.User{Id: 1})
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	t.Run("should create a goal with one pending slot per month", func(t *testing.T) {
		// given
		service, _, _ := setupGoalService(now)

		// when
		created, err := service.Create(ctx, SavingGoal{Name: "vacation", TargetAmount: 500, TargetMonths: 5})

		// then
		require.NoError(t, err)
		assert.NotZero(t, created.Id)
		require.Len(t, created.Contributions, 5)
		for i, c := range created.Contributions {
			assert.Equal(t, i+1, c.MonthIndex)
			assert.False(t, c.Contributed)
			assert.Zero(t, c.ContributedAmount)
			assert.Nil(t, c.RecordedAt)
		}
	})

	t.Run("should reject fewer than one month", func(t *testing.T) {
		// given
		service, _, _ := setupGoalService(now)

		// when
		_, err := service.Create(ctx, SavingGoal{Name: "vacation", TargetAmount: 500, TargetMonths: 0})

		// then
		assert.ErrorIs(t, err, ErrInvalidMonths)
	})

	t.Run("should fail without a user in context", func(t *testing.T) {
		// given
		service, _, _ := setupGoalService(now)

		// when
		_, err := service.Create(context.Background(), SavingGoal{Name: "vacation", TargetAmount: 500, TargetMonths: 5})

		// then
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestGoalService_List(t *testing.T) {
	ctx := user.WithUser(context.Background(), user.User{Id: 1})
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	t.Run("should only return the current user's goals", func(t *testing.T) {
		// given
		service, repo, _ := setupGoalService(now)
		mine, _ := repo.Store(ctx, 1, SavingGoal{Name: "vacation", TargetAmount: 500, TargetMonths: 5})
		_, _ = repo.Store(ctx, 2, SavingGoal{Name: "car", TargetAmount: 9000, TargetMonths: 24})

		// when
		goals, err := service.List(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, goals, 1)
		assert.Equal(t, mine.Id, goals[0].Id)
	})
}

func TestGoalService_Contribute(t *testing.T) {
	ctx := user.WithUser(context.Background(), user.User{Id: 1})
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	t.Run("should record the fixed monthly share", func(t *testing.T) {
		// given
		service, repo, _ := setupGoalService(now)
		stored, _ := repo.Store(ctx, 1, SavingGoal{Name: "vacation", TargetAmount: 1200, TargetMonths: 12})

		// when
		amount, err := service.Contribute(ctx, stored.Id, 3)

		// then
		require.NoError(t, err)
		assert.Equal(t, 100.0, amount)

		g, _, _ := repo.Get(ctx, stored.Id)
		slot := g.Contributions[2]
		assert.True(t, slot.Contributed)
		assert.Equal(t, 100.0, slot.ContributedAmount)
		require.NotNil(t, slot.RecordedAt)
		assert.Equal(t, now, *slot.RecordedAt)
	})

	t.Run("should overwrite an already-contributed month", func(t *testing.T) {
		// given
		service, repo, clock := setupGoalService(now)
		stored, _ := repo.Store(ctx, 1, SavingGoal{Name: "vacation", TargetAmount: 1200, TargetMonths: 12})
		_, err := service.Contribute(ctx, stored.Id, 3)
		require.NoError(t, err)

		// when
		later := now.AddDate(0, 1, 0)
		clock.SetNow(later)
		amount, err := service.Contribute(ctx, stored.Id, 3)

		// then
		require.NoError(t, err)
		assert.Equal(t, 100.0, amount)
		g, _, _ := repo.Get(ctx, stored.Id)
		require.NotNil(t, g.Contributions[2].RecordedAt)
		assert.Equal(t, later, *g.Contributions[2].RecordedAt)
	})

	t.Run("should reject a month index outside the plan", func(t *testing.T) {
		// given
		service, repo, _ := setupGoalService(now)
		stored, _ := repo.Store(ctx, 1, SavingGoal{Name: "vacation", TargetAmount: 1200, TargetMonths: 12})

		// when
		_, err := service.Contribute(ctx, stored.Id, 13)

		// then
		assert.ErrorIs(t, err, ErrInvalidMonth)
	})

	t.Run("should refuse another user's goal", func(t *testing.T) {
		// given
		service, repo, _ := setupGoalService(now)
		stored, _ := repo.Store(ctx, 2, SavingGoal{Name: "car", TargetAmount: 9000, TargetMonths: 24})

		// when
		_, err := service.Contribute(ctx, stored.Id, 1)

		// then
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("should report a missing goal", func(t *testing.T) {
		// given
		service, _, _ := setupGoalService(now)

		// when
		_, err := service.Contribute(ctx, 404, 1)

		// then
		assert.ErrorIs(t, err, ErrGoalNotFound)
	})
}

func TestSavingGoal_MonthlyAmount(t *testing.T) {
	assert.Equal(t, 100.0, SavingGoal{TargetAmount: 1200, TargetMonths: 12}.MonthlyAmount())
	assert.Equal(t, 500.0, SavingGoal{TargetAmount: 500, TargetMonths: 1}.MonthlyAmount())
	// zero months never divides by zero
	assert.Equal(t, 500.0, SavingGoal{TargetAmount: 500, TargetMonths: 0}.MonthlyAmount())
}
