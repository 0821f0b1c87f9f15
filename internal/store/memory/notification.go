package memory

import (
	"context"
	"slices"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
)

type NotificationRepository struct {
	db *DB
}

func (r *NotificationRepository) RecentLikes(ctx context.Context, ownerID, limit int) ([]types.LikeNotification, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	likes := make([]types.LikeNotification, 0)
	for _, like := range slices.Backward(r.db.likes) {
		if len(likes) == limit {
			break
		}
		if like.userID == ownerID {
			continue
		}
		i := r.db.postIndex(like.postID)
		if i < 0 || r.db.posts[i].UserID != ownerID {
			continue
		}
		name, ok := r.db.userName(like.userID)
		if !ok {
			continue
		}
		likes = append(likes, types.LikeNotification{
			LikerID:     like.userID,
			LikerName:   name,
			PostID:      like.postID,
			PostContent: r.db.posts[i].Content,
			LikedAt:     like.createdAt,
		})
	}
	return likes, nil
}

func (r *NotificationRepository) RecentComments(ctx context.Context, ownerID, limit int) ([]types.CommentNotification, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	comments := make([]types.CommentNotification, 0)
	for _, comment := range slices.Backward(r.db.comments) {
		if len(comments) == limit {
			break
		}
		if comment.UserID == ownerID {
			continue
		}
		i := r.db.postIndex(comment.PostID)
		if i < 0 || r.db.posts[i].UserID != ownerID {
			continue
		}
		name, ok := r.db.userName(comment.UserID)
		if !ok {
			continue
		}
		comments = append(comments, types.CommentNotification{
			CommenterID:   comment.UserID,
			CommenterName: name,
			PostID:        comment.PostID,
			PostContent:   r.db.posts[i].Content,
			CommentText:   comment.Content,
			CommentedAt:   comment.CreatedAt,
		})
	}
	return comments, nil
}
