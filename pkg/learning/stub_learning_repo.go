package learning

import (
	"context"
	"time"
)

// StubLearningRepo is an in-memory Repo for tests.
type StubLearningRepo struct {
	nextId int
	items  []Item
}

func NewStubLearningRepo() *StubLearningRepo {
	return &StubLearningRepo{}
}

func (s *StubLearningRepo) Append(ctx context.Context, item Item) (Item, error) {
	s.nextId++
	item.Id = s.nextId
	item.CreatedAt = time.Now()
	s.items = append(s.items, item)
	return item, nil
}

func (s *StubLearningRepo) List(ctx context.Context) ([]Item, error) {
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items, nil
}

func (s *StubLearningRepo) Cleanup() {
	s.items = nil
	s.nextId = 0
}
