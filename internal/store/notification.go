package store

import (
	"context"
	"database/sql"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
)

// NotificationRepository reads activity on a user's posts.
type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// RecentLikes returns the latest likes by other users on ownerID's posts.
func (r *NotificationRepository) RecentLikes(ctx context.Context, ownerID, limit int) ([]types.LikeNotification, error) {
	const query = `
		SELECT pl.user_id, u.name, pl.post_id, COALESCE(p.content, ''), pl.created_at
		FROM post_likes pl
		JOIN posts p ON p.id = pl.post_id
		JOIN users u ON u.id = pl.user_id
		WHERE p.user_id = $1 AND pl.user_id <> $1
		ORDER BY pl.created_at DESC
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := make([]types.LikeNotification, 0)
	for rows.Next() {
		var like types.LikeNotification
		if err := rows.Scan(&like.LikerID, &like.LikerName, &like.PostID, &like.PostContent, &like.LikedAt); err != nil {
			return nil, err
		}
		likes = append(likes, like)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return likes, nil
}

// RecentComments returns the latest comments by other users on ownerID's posts.
func (r *NotificationRepository) RecentComments(ctx context.Context, ownerID, limit int) ([]types.CommentNotification, error) {
	const query = `
		SELECT c.user_id, u.name, c.post_id, COALESCE(p.content, ''), c.content, c.created_at
		FROM comments c
		JOIN posts p ON p.id = c.post_id
		JOIN users u ON u.id = c.user_id
		WHERE p.user_id = $1 AND c.user_id <> $1
		ORDER BY c.created_at DESC
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]types.CommentNotification, 0)
	for rows.Next() {
		var comment types.CommentNotification
		if err := rows.Scan(
			&comment.CommenterID,
			&comment.CommenterName,
			&comment.PostID,
			&comment.PostContent,
			&comment.CommentText,
			&comment.CommentedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}
