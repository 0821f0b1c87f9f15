package types

import "time"

// MaxCommentLength is the maximum number of characters in a comment.
const MaxCommentLength = 300

// Comment is a reply to a post.
type Comment struct {
	ID        int       `json:"id" db:"id"`
	PostID    int       `json:"post_id" db:"post_id"`
	UserID    int       `json:"user_id" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UserName is the commenter's display name, populated by list queries.
	UserName string `json:"user_name,omitempty"`
}
