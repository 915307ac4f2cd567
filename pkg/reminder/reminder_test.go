package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/finbook/finbook/internal/event_bus"
	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/bill"
	"github.com/finbook/finbook/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_ScanOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)

	userService := user.NewUserService(user.NewStubUserRepo(), event_bus.NewEventBus())
	alice, err := userService.CreateUser(ctx, user.User{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	bob, err := userService.CreateUser(ctx, user.User{Username: "bob", Email: "bob@example.com"})
	require.NoError(t, err)

	bills := bill.NewStubBillRepo()
	// due today
	_, _ = bills.Store(ctx, alice.Id, bill.Bill{
		BillType:   "rent",
		Amount:     950,
		AnchorDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Period:     bill.PeriodMonthly,
	})
	// due in 3 days but already paid
	paid, _ := bills.Store(ctx, alice.Id, bill.Bill{
		BillType:   "internet",
		Amount:     40,
		AnchorDate: time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		Period:     bill.PeriodMonthly,
	})
	require.NoError(t, bills.MarkPaid(ctx, paid.Id))
	// due in 6 days, outside the window
	_, _ = bills.Store(ctx, bob.Id, bill.Bill{
		BillType:   "gym",
		Amount:     25,
		AnchorDate: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		Period:     bill.PeriodWeekly,
	})
	// due in 5 days, on the window edge
	_, _ = bills.Store(ctx, bob.Id, bill.Bill{
		BillType:   "electricity",
		Amount:     60,
		AnchorDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Period:     bill.PeriodMonthly,
	})

	scanner := NewScanner(userService, bills, &utils.MockClock{FixedNow: now})

	count, err := scanner.ScanOnce(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestScanner_Schedule(t *testing.T) {
	userService := user.NewUserService(user.NewStubUserRepo(), event_bus.NewEventBus())
	scanner := NewScanner(userService, bill.NewStubBillRepo(), utils.SystemClock{})

	t.Run("should reject a malformed schedule", func(t *testing.T) {
		_, err := scanner.Schedule("every day at dawn")
		assert.Error(t, err)
	})

	t.Run("should start and stop cleanly", func(t *testing.T) {
		stop, err := scanner.Schedule("0 8 * * *")
		require.NoError(t, err)
		stop()
	})
}
