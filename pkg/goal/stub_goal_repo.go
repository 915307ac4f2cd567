package goal

import (
	"context"
	"time"
)

type ownedGoal struct {
	userId int
	goal   SavingGoal
}

// StubGoalRepo is an in-memory Repo for tests.
type StubGoalRepo struct {
	nextId int
	rows   map[int]ownedGoal
}

func NewStubGoalRepo() *StubGoalRepo {
	return &StubGoalRepo{rows: map[int]ownedGoal{}}
}

func (s *StubGoalRepo) Store(ctx context.Context, userId int, goal SavingGoal) (SavingGoal, error) {
	s.nextId++
	goal.Id = s.nextId
	goal.CommittedAt = time.Now()
	goal.CreatedAt = goal.CommittedAt
	goal.Contributions = make([]SavingContribution, 0, goal.TargetMonths)
	for monthIndex := 1; monthIndex <= goal.TargetMonths; monthIndex++ {
		s.nextId++
		goal.Contributions = append(goal.Contributions, SavingContribution{
			Id:         s.nextId,
			MonthIndex: monthIndex,
		})
	}
	s.rows[goal.Id] = ownedGoal{userId, goal}
	return goal, nil
}

func (s *StubGoalRepo) GetAll(ctx context.Context, userId int) ([]SavingGoal, error) {
	goals := make([]SavingGoal, 0, len(s.rows))
	for _, row := range s.rows {
		if row.userId == userId {
			goals = append(goals, row.goal)
		}
	}
	return goals, nil
}

func (s *StubGoalRepo) Get(ctx context.Context, goalId int) (SavingGoal, int, error) {
	row, ok := s.rows[goalId]
	if !ok {
		return SavingGoal{}, 0, ErrGoalNotFound
	}
	return row.goal, row.userId, nil
}

func (s *StubGoalRepo) Contribute(ctx context.Context, goalId int, monthIndex int, amount float64, recordedAt time.Time) error {
	row, ok := s.rows[goalId]
	if !ok {
		return ErrInvalidMonth
	}
	for i, c := range row.goal.Contributions {
		if c.MonthIndex == monthIndex {
			row.goal.Contributions[i].Contributed = true
			row.goal.Contributions[i].ContributedAmount = amount
			recorded := recordedAt
			row.goal.Contributions[i].RecordedAt = &recorded
			s.rows[goalId] = row
			return nil
		}
	}
	return ErrInvalidMonth
}

func (s *StubGoalRepo) DeleteAllForUser(ctx context.Context, userId int) error {
	for id, row := range s.rows {
		if row.userId == userId {
			delete(s.rows, id)
		}
	}
	return nil
}

func (s *StubGoalRepo) Cleanup() {
	s.rows = map[int]ownedGoal{}
	s.nextId = 0
}
