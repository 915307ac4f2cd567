package user

import "context"

// StubUserRepo is an in-memory Repo for tests.
type StubUserRepo struct {
	nextId int
	users  map[int]User
}

func NewStubUserRepo() *StubUserRepo {
	return &StubUserRepo{users: map[int]User{}}
}

func (s *StubUserRepo) CreateUser(ctx context.Context, user User) (int, error) {
	for _, existing := range s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return 0, ErrUserExists
		}
	}
	s.nextId++
	user.Id = s.nextId
	s.users[user.Id] = user
	return user.Id, nil
}

func (s *StubUserRepo) GetUser(ctx context.Context, id int) (User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return User{}, ErrUserNotFound
}

func (s *StubUserRepo) GetUserByUid(ctx context.Context, uid string) (User, error) {
	for _, u := range s.users {
		if u.Uid == uid {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubUserRepo) GetAllUsers(ctx context.Context) ([]User, error) {
	users := make([]User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users, nil
}

func (s *StubUserRepo) DeleteUser(ctx context.Context, id int) error {
	if _, ok := s.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *StubUserRepo) Cleanup() {
	s.users = map[int]User{}
	s.nextId = 0
}
