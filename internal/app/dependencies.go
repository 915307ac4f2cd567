package app

import (
	"context"

	"github.com/finbook/finbook/internal/config"
	"github.com/finbook/finbook/internal/event_bus"
	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/bill"
	"github.com/finbook/finbook/pkg/goal"
	"github.com/finbook/finbook/pkg/learning"
	"github.com/finbook/finbook/pkg/reminder"
	"github.com/finbook/finbook/pkg/transaction"
	"github.com/finbook/finbook/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus   *event_bus.EventBus
	Clock utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	TransactionRepo    transaction.Repo
	TransactionService transaction.Service
	TransactionHandler *transaction.Handler

	BillRepo    bill.Repo
	BillService bill.Service
	BillHandler *bill.Handler

	GoalRepo    goal.Repo
	GoalService goal.Service
	GoalHandler *goal.Handler

	LearningRepo    learning.Repo
	LearningHandler *learning.Handler

	ReminderScanner *reminder.Scanner
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Bus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db), deps.Bus)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.TransactionRepo = transaction.NewTransactionRepo(db)
	deps.TransactionService = transaction.NewTransactionService(deps.TransactionRepo, deps.Clock)
	deps.TransactionHandler = transaction.NewHandler(deps.TransactionService)

	deps.BillRepo = bill.NewBillRepo(db)
	deps.BillService = bill.NewBillService(deps.BillRepo, deps.Clock)
	deps.BillHandler = bill.NewHandler(deps.BillService)

	deps.GoalRepo = goal.NewGoalRepo(db)
	deps.GoalService = goal.NewGoalService(deps.GoalRepo, deps.Clock)
	deps.GoalHandler = goal.NewHandler(deps.GoalService)

	deps.LearningRepo = learning.NewLearningRepo(db)
	deps.LearningHandler = learning.NewHandler(deps.LearningRepo, cfg.Learning.PublishCode)

	deps.ReminderScanner = reminder.NewScanner(deps.UserService, deps.BillRepo, deps.Clock)

	subscribeCascades(deps)

	return deps
}

// subscribeCascades makes every record-owning package remove its rows when a
// user is deleted. Handlers run synchronously, before the user row goes away.
func subscribeCascades(deps *Dependencies) {
	event_bus.SubscribeTyped(deps.Bus, event_bus.UserDeletedEvent, func(ctx context.Context, e event_bus.UserDeleted) error {
		return deps.TransactionRepo.DeleteAllForUser(ctx, e.UserId)
	})
	event_bus.SubscribeTyped(deps.Bus, event_bus.UserDeletedEvent, func(ctx context.Context, e event_bus.UserDeleted) error {
		return deps.BillRepo.DeleteAllForUser(ctx, e.UserId)
	})
	event_bus.SubscribeTyped(deps.Bus, event_bus.UserDeletedEvent, func(ctx context.Context, e event_bus.UserDeleted) error {
		return deps.GoalRepo.DeleteAllForUser(ctx, e.UserId)
	})
}
