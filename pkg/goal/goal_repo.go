package goal

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	// Store inserts the goal and its contribution slots 1..TargetMonths in a
	// single transaction.
	Store(ctx context.Context, userId int, goal SavingGoal) (SavingGoal, error)
	GetAll(ctx context.Context, userId int) ([]SavingGoal, error)
	// Get fetches a goal by id regardless of owner; the service decides
	// between "not found" and "not yours".
	Get(ctx context.Context, goalId int) (SavingGoal, int, error)
	// Contribute marks the slot for monthIndex and overwrites its amount and
	// timestamp. Returns ErrInvalidMonth when the slot does not exist.
	Contribute(ctx context.Context, goalId int, monthIndex int, amount float64, recordedAt time.Time) error
	DeleteAllForUser(ctx context.Context, userId int) error
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewGoalRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, goal SavingGoal) (SavingGoal, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		log.Errorf("failed to begin transaction: %v", err)
		return SavingGoal{}, err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO saving_goals (user_id, name, target_amount, target_months)
				VALUES ($1, $2, $3, $4) RETURNING id, committed_at, created_at`
	err = tx.QueryRow(ctx, query,
		userId,
		goal.Name,
		goal.TargetAmount,
		goal.TargetMonths,
	).Scan(&goal.Id, &goal.CommittedAt, &goal.CreatedAt)
	if err != nil {
		log.Errorf("failed to store saving goal: %v", err)
		return SavingGoal{}, err
	}

	goal.Contributions = make([]SavingContribution, 0, goal.TargetMonths)
	for monthIndex := 1; monthIndex <= goal.TargetMonths; monthIndex++ {
		var contribution SavingContribution
		contribution.MonthIndex = monthIndex
		err := tx.QueryRow(ctx,
			`INSERT INTO saving_contributions (goal_id, month_index) VALUES ($1, $2) RETURNING id`,
			goal.Id, monthIndex,
		).Scan(&contribution.Id)
		if err != nil {
			log.Errorf("failed to store contribution slot %d: %v", monthIndex, err)
			return SavingGoal{}, err
		}
		goal.Contributions = append(goal.Contributions, contribution)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Errorf("failed to commit saving goal: %v", err)
		return SavingGoal{}, err
	}
	return goal, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]SavingGoal, error) {
	query := `SELECT id, name, target_amount, target_months, committed_at, created_at
				FROM saving_goals WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		log.Errorf("failed to query saving goals: %v", err)
		return nil, err
	}
	defer rows.Close()

	goals := make([]SavingGoal, 0, 10)
	for rows.Next() {
		var g SavingGoal
		if err := rows.Scan(&g.Id, &g.Name, &g.TargetAmount, &g.TargetMonths, &g.CommittedAt, &g.CreatedAt); err != nil {
			log.Errorf("failed to scan saving goal: %v", err)
			return nil, err
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, err
	}

	for i := range goals {
		contributions, err := r.contributionsFor(ctx, goals[i].Id)
		if err != nil {
			return nil, err
		}
		goals[i].Contributions = contributions
	}
	return goals, nil
}

func (r *RepoImpl) Get(ctx context.Context, goalId int) (SavingGoal, int, error) {
	query := `SELECT id, name, target_amount, target_months, committed_at, created_at, user_id
				FROM saving_goals WHERE id = $1`
	var g SavingGoal
	var ownerId int
	err := r.db.QueryRow(ctx, query, goalId).Scan(
		&g.Id, &g.Name, &g.TargetAmount, &g.TargetMonths, &g.CommittedAt, &g.CreatedAt, &ownerId,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return SavingGoal{}, 0, ErrGoalNotFound
	} else if err != nil {
		log.Errorf("failed to get saving goal: %v", err)
		return SavingGoal{}, 0, err
	}
	return g, ownerId, nil
}

func (r *RepoImpl) Contribute(ctx context.Context, goalId int, monthIndex int, amount float64, recordedAt time.Time) error {
	query := `UPDATE saving_contributions
				SET contributed = TRUE, contributed_amount = $1, recorded_at = $2
				WHERE goal_id = $3 AND month_index = $4`
	result, err := r.db.Exec(ctx, query, amount, recordedAt, goalId, monthIndex)
	if err != nil {
		log.Errorf("failed to record contribution: %v", err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrInvalidMonth
	}
	return nil
}

func (r *RepoImpl) DeleteAllForUser(ctx context.Context, userId int) error {
	// contribution rows go with their goals via ON DELETE CASCADE
	if _, err := r.db.Exec(ctx, `DELETE FROM saving_goals WHERE user_id = $1`, userId); err != nil {
		log.Errorf("failed to delete saving goals for user %d: %v", userId, err)
		return err
	}
	return nil
}

func (r *RepoImpl) contributionsFor(ctx context.Context, goalId int) ([]SavingContribution, error) {
	query := `SELECT id, month_index, contributed, contributed_amount, recorded_at
				FROM saving_contributions WHERE goal_id = $1 ORDER BY month_index`
	rows, err := r.db.Query(ctx, query, goalId)
	if err != nil {
		log.Errorf("failed to query contributions: %v", err)
		return nil, err
	}
	defer rows.Close()

	contributions := make([]SavingContribution, 0, 12)
	for rows.Next() {
		var c SavingContribution
		if err := rows.Scan(&c.Id, &c.MonthIndex, &c.Contributed, &c.ContributedAmount, &c.RecordedAt); err != nil {
			log.Errorf("failed to scan contribution: %v", err)
			return nil, err
		}
		contributions = append(contributions, c)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, err
	}
	return contributions, nil
}
