package bill

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int, bill Bill) (Bill, error)
	GetAll(ctx context.Context, userId int) ([]Bill, error)
	// Get fetches a bill by id regardless of owner; the service decides
	// between "not found" and "not yours".
	Get(ctx context.Context, billId int) (Bill, int, error)
	MarkPaid(ctx context.Context, billId int) error
	Delete(ctx context.Context, billId int) error
	DeleteAllForUser(ctx context.Context, userId int) error
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewBillRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, bill Bill) (Bill, error) {
	query := `INSERT INTO bills (user_id, bill_type, amount, anchor_date, time_period, priority)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		userId,
		bill.BillType,
		bill.Amount,
		bill.AnchorDate.Format("2006-01-02"),
		bill.Period,
		bill.Priority,
	).Scan(&bill.Id, &bill.CreatedAt)
	if err != nil {
		log.Errorf("failed to store bill: %v", err)
		return Bill{}, err
	}
	return bill, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Bill, error) {
	query := `SELECT id, bill_type, amount, anchor_date, time_period, priority, is_paid, created_at
				FROM bills WHERE user_id = $1 ORDER BY priority ASC, anchor_date ASC`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		log.Errorf("failed to query bills: %v", err)
		return nil, err
	}
	defer rows.Close()

	bills := make([]Bill, 0, 10)
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, err
	}
	return bills, nil
}

func (r *RepoImpl) Get(ctx context.Context, billId int) (Bill, int, error) {
	query := `SELECT id, bill_type, amount, anchor_date, time_period, priority, is_paid, created_at, user_id
				FROM bills WHERE id = $1`
	var bill Bill
	var anchorDate time.Time
	var ownerId int
	err := r.db.QueryRow(ctx, query, billId).Scan(
		&bill.Id,
		&bill.BillType,
		&bill.Amount,
		&anchorDate,
		&bill.Period,
		&bill.Priority,
		&bill.IsPaid,
		&bill.CreatedAt,
		&ownerId,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Bill{}, 0, ErrBillNotFound
	} else if err != nil {
		log.Errorf("failed to get bill: %v", err)
		return Bill{}, 0, err
	}
	bill.AnchorDate = midnightUTC(anchorDate)
	return bill, ownerId, nil
}

func (r *RepoImpl) MarkPaid(ctx context.Context, billId int) error {
	result, err := r.db.Exec(ctx, `UPDATE bills SET is_paid = TRUE WHERE id = $1`, billId)
	if err != nil {
		log.Errorf("failed to mark bill paid: %v", err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrBillNotFound
	}
	return nil
}

func (r *RepoImpl) Delete(ctx context.Context, billId int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM bills WHERE id = $1`, billId)
	if err != nil {
		log.Errorf("failed to delete bill: %v", err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrBillNotFound
	}
	return nil
}

func (r *RepoImpl) DeleteAllForUser(ctx context.Context, userId int) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM bills WHERE user_id = $1`, userId); err != nil {
		log.Errorf("failed to delete bills for user %d: %v", userId, err)
		return err
	}
	return nil
}

func scanBill(rows pgx.Rows) (Bill, error) {
	var bill Bill
	var anchorDate time.Time
	if err := rows.Scan(
		&bill.Id,
		&bill.BillType,
		&bill.Amount,
		&anchorDate,
		&bill.Period,
		&bill.Priority,
		&bill.IsPaid,
		&bill.CreatedAt,
	); err != nil {
		log.Errorf("failed to scan bill: %v", err)
		return Bill{}, err
	}
	bill.AnchorDate = midnightUTC(anchorDate)
	return bill, nil
}

// DATE columns come back at midnight in the session location; pin them to UTC
// so date arithmetic stays exact.
func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
