package user

import (
	"context"
	"fmt"

	"github.com/finbook/finbook/internal/event_bus"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	CreateUser(ctx context.Context, user User) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	DeleteCurrentUser(ctx context.Context) error
}

type ServiceImpl struct {
	repo Repo
	bus  *event_bus.EventBus
}

func NewUserService(repo Repo, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus}
}

func (s *ServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	user.Uid = uuid.NewString()
	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, err
	}
	user.Id = id
	log.Infof("created user %s (%s)", user.Username, user.Uid)
	return user, nil
}

func (s *ServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return s.repo.GetUserByUid(ctx, uid)
}

func (s *ServiceImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	return s.repo.GetAllUsers(ctx)
}

// DeleteCurrentUser removes the current user and everything they own. The
// owned records are deleted by UserDeleted subscribers before the user row
// goes away, so the cascade never leaves orphans behind.
func (s *ServiceImpl) DeleteCurrentUser(ctx context.Context) error {
	userId, err := CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.UserDeletedEvent, event_bus.UserDeleted{UserId: userId})); err != nil {
		return fmt.Errorf("failed to cascade user deletion: %w", err)
	}
	return s.repo.DeleteUser(ctx, userId)
}
