package events

import "time"

// Event kinds emitted on post and user lifecycle changes.
const (
	KindPostCreated  = "post.created"
	KindPostDeleted  = "post.deleted"
	KindPostFeatured = "post.featured"
	KindUserCreated  = "user.created"
	KindUserDeleted  = "user.deleted"
)

// PostEvent is the payload for post lifecycle events.
type PostEvent struct {
	PostID     string    `json:"post_id"`
	Slug       string    `json:"slug"`
	AuthorID   string    `json:"author_id,omitempty"`
	IsFeatured bool      `json:"is_featured,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// UserEvent is the payload for user lifecycle events.
type UserEvent struct {
	UserID         string    `json:"user_id,omitempty"`
	ExternalUserID string    `json:"external_user_id"`
	Username       string    `json:"username,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
