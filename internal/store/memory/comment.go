package memory

import (
	"context"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/store"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
)

type CommentRepository struct {
	db *DB
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID int) ([]types.Comment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	comments := make([]types.Comment, 0)
	for _, comment := range r.db.comments {
		if comment.PostID != postID {
			continue
		}
		name, ok := r.db.userName(comment.UserID)
		if !ok {
			continue
		}
		comment.UserName = name
		comments = append(comments, comment)
	}
	return comments, nil
}

func (r *CommentRepository) Create(ctx context.Context, comment types.Comment) (types.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.db.postIndex(comment.PostID) < 0 || r.db.userIndex(comment.UserID) < 0 {
		return types.Comment{}, store.ErrNotFound
	}
	comment.ID = r.db.id("comments")
	comment.CreatedAt = r.db.stamp()
	comment.UserName = ""
	r.db.comments = append(r.db.comments, comment)
	return comment, nil
}
