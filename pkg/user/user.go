package user

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username or email already taken")
)

// User is the owner of all financial records. Authentication itself is
// external: requests carry the user's uid in the X-User-Id header.
type User struct {
	Id         int
	Uid        string
	Username   string
	Occupation string
	Mobile     string
	Email      string
	CreatedAt  time.Time
}
