package types

import "time"

// NotificationLimit caps each notification list.
const NotificationLimit = 50

// LikeNotification reports that another user liked one of the caller's posts.
type LikeNotification struct {
	LikerID     int       `json:"likerId"`
	LikerName   string    `json:"likerName"`
	PostID      int       `json:"post_id"`
	PostContent string    `json:"postContent"`
	LikedAt     time.Time `json:"likedAt"`
}

// CommentNotification reports that another user commented on one of the caller's posts.
type CommentNotification struct {
	CommenterID   int       `json:"commenterId"`
	CommenterName string    `json:"commenterName"`
	PostID        int       `json:"post_id"`
	PostContent   string    `json:"postContent"`
	CommentText   string    `json:"commentText"`
	CommentedAt   time.Time `json:"commentedAt"`
}

// Notifications groups the two independently capped activity lists.
type Notifications struct {
	Likes    []LikeNotification    `json:"likes"`
	Comments []CommentNotification `json:"comments"`
}
