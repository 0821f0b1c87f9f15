package types

import "time"

// Post is a piece of content published by a user. A post carries text,
// a media attachment, or both.
type Post struct {
	// ID is the unique identifier of the post.
	ID int `json:"id" db:"id"`

	// UserID identifies the author.
	UserID int `json:"user_id" db:"user_id"`

	// Content is the text body. Empty when the post is media only.
	Content string `json:"content" db:"content"`

	// MediaPath is the object key of the attached media file, served under
	// /uploads. Empty when the post has no attachment.
	MediaPath string `json:"media_path" db:"media_path"`

	// CreatedAt is the publication timestamp.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// HasBody reports whether the post has text or media.
func (p Post) HasBody() bool {
	return p.Content != "" || p.MediaPath != ""
}

// FeedPost is a post as rendered in feeds: joined with its author's name
// and the number of likes it has received.
type FeedPost struct {
	Post

	// AuthorName is the display name of the post's author.
	AuthorName string `json:"name"`

	// LikeCount is the number of users who liked the post.
	LikeCount int `json:"like_count"`
}
