package transaction

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int, transaction Transaction) (Transaction, error)
	FindPage(ctx context.Context, userId int, offset int, limit int) ([]Transaction, error)
	Count(ctx context.Context, userId int) (int, error)
	SumByKind(ctx context.Context, userId int) (income float64, expense float64, err error)
	DailyTotals(ctx context.Context, userId int, from time.Time, to time.Time) (map[time.Time]DayTotals, error)
	DeleteAllForUser(ctx context.Context, userId int) error
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewTransactionRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, transaction Transaction) (Transaction, error) {
	query := `INSERT INTO transactions (user_id, type, amount, description)
				VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		userId,
		transaction.Kind,
		transaction.Amount,
		transaction.Description,
	).Scan(&transaction.Id, &transaction.CreatedAt)
	if err != nil {
		log.Errorf("failed to store transaction: %v", err)
		return Transaction{}, err
	}
	return transaction, nil
}

func (r *RepoImpl) FindPage(ctx context.Context, userId int, offset int, limit int) ([]Transaction, error) {
	query := `SELECT id, type, amount, description, created_at FROM transactions
				WHERE user_id = $1 ORDER BY created_at DESC, id DESC OFFSET $2 LIMIT $3`
	rows, err := r.db.Query(ctx, query, userId, offset, limit)
	if err != nil {
		log.Errorf("failed to query transactions: %v", err)
		return nil, err
	}
	defer rows.Close()

	transactions := make([]Transaction, 0, limit)
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.Id, &t.Kind, &t.Amount, &t.Description, &t.CreatedAt); err != nil {
			log.Errorf("failed to scan transaction: %v", err)
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, err
	}
	return transactions, nil
}

func (r *RepoImpl) Count(ctx context.Context, userId int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE user_id = $1`, userId).Scan(&count)
	if err != nil {
		log.Errorf("failed to count transactions: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *RepoImpl) SumByKind(ctx context.Context, userId int) (float64, float64, error) {
	query := `SELECT
				COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
				COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
			  FROM transactions WHERE user_id = $1`
	var income, expense float64
	if err := r.db.QueryRow(ctx, query, userId).Scan(&income, &expense); err != nil {
		log.Errorf("failed to sum transactions: %v", err)
		return 0, 0, err
	}
	return income, expense, nil
}

// DailyTotals returns per-day income/expense sums for calendar dates in
// [from, to]. Keys are midnight UTC; days without transactions are absent.
func (r *RepoImpl) DailyTotals(ctx context.Context, userId int, from time.Time, to time.Time) (map[time.Time]DayTotals, error) {
	query := `SELECT created_at::date,
				COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
				COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
			  FROM transactions
			  WHERE user_id = $1 AND created_at::date BETWEEN $2::date AND $3::date
			  GROUP BY created_at::date`
	rows, err := r.db.Query(ctx, query, userId, from, to)
	if err != nil {
		log.Errorf("failed to query daily totals: %v", err)
		return nil, err
	}
	defer rows.Close()

	totals := make(map[time.Time]DayTotals)
	for rows.Next() {
		var day time.Time
		var dt DayTotals
		if err := rows.Scan(&day, &dt.Income, &dt.Expense); err != nil {
			log.Errorf("failed to scan daily totals: %v", err)
			return nil, err
		}
		totals[time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)] = dt
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, err
	}
	return totals, nil
}

func (r *RepoImpl) DeleteAllForUser(ctx context.Context, userId int) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE user_id = $1`, userId); err != nil {
		log.Errorf("failed to delete transactions for user %d: %v", userId, err)
		return err
	}
	return nil
}
