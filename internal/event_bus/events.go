package event_bus

const (
	// UserDeletedEvent is published before a user row is removed. Subscribers
	// delete the records they own for that user, so the cascade completes
	// before the user itself disappears.
	UserDeletedEvent EventType = "user.deleted"
)

type UserDeleted struct {
	UserId int
}
