package learning

import "time"

// Item is a piece of shared learning content (an article summary or a video
// link). Items are owner-agnostic: every user sees the same list.
type Item struct {
	Id        int
	ItemType  string
	Name      string
	Content   string
	Image     string
	CreatedAt time.Time
}
