package transaction

import (
	"context"
	"fmt"

	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/user"
)

const (
	perPage   = 15
	trendDays = 30
)

type Service interface {
	Create(ctx context.Context, transaction Transaction) (Transaction, Totals, error)
	List(ctx context.Context, page int) (Page, error)
	Totals(ctx context.Context) (Totals, error)
	Trend(ctx context.Context) (Chart, error)
}

type ServiceImpl struct {
	repo  Repo
	clock utils.Clock
}

func NewTransactionService(repo Repo, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) Create(ctx context.Context, transaction Transaction) (Transaction, Totals, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, Totals{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if transaction.Kind != KindIncome && transaction.Kind != KindExpense {
		return Transaction{}, Totals{}, ErrInvalidKind
	}

	created, err := s.repo.Store(ctx, userId, transaction)
	if err != nil {
		return Transaction{}, Totals{}, err
	}
	totals, err := s.totalsFor(ctx, userId)
	if err != nil {
		return Transaction{}, Totals{}, err
	}
	return created, totals, nil
}

func (s *ServiceImpl) List(ctx context.Context, page int) (Page, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if page < 1 {
		page = 1
	}

	total, err := s.repo.Count(ctx, userId)
	if err != nil {
		return Page{}, err
	}
	items, err := s.repo.FindPage(ctx, userId, (page-1)*perPage, perPage)
	if err != nil {
		return Page{}, err
	}

	totalPages := 1
	if total > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	return Page{Items: items, Page: page, TotalPages: totalPages, Total: total}, nil
}

func (s *ServiceImpl) Totals(ctx context.Context) (Totals, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Totals{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.totalsFor(ctx, userId)
}

func (s *ServiceImpl) totalsFor(ctx context.Context, userId int) (Totals, error) {
	income, expense, err := s.repo.SumByKind(ctx, userId)
	if err != nil {
		return Totals{}, err
	}
	return Totals{TotalIncome: income, TotalExpense: expense, NetBalance: income - expense}, nil
}

// Trend builds the 30-day series ending today, oldest day first. The running
// net accumulates income minus expense across the window only, so the final
// entry is the 30-day net, not the lifetime balance.
func (s *ServiceImpl) Trend(ctx context.Context) (Chart, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Chart{}, fmt.Errorf("failed to get current user: %w", err)
	}

	today := utils.DateOf(s.clock.Now())
	from := today.AddDate(0, 0, -(trendDays - 1))
	daily, err := s.repo.DailyTotals(ctx, userId, from, today)
	if err != nil {
		return Chart{}, err
	}

	chart := Chart{
		Labels:     make([]string, 0, trendDays),
		Expense:    make([]float64, 0, trendDays),
		NetBalance: make([]float64, 0, trendDays),
	}
	runningNet := 0.0
	for day := from; !day.After(today); day = day.AddDate(0, 0, 1) {
		totals := daily[day]
		runningNet += totals.Income - totals.Expense
		chart.Labels = append(chart.Labels, day.Format("2006-01-02"))
		chart.Expense = append(chart.Expense, totals.Expense)
		chart.NetBalance = append(chart.NetBalance, runningNet)
	}
	return chart, nil
}
