package memory

import (
	"context"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/store"
)

type LikeRepository struct {
	db *DB
}

func (r *LikeRepository) Exists(ctx context.Context, postID, userID int) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, like := range r.db.likes {
		if like.postID == postID && like.userID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *LikeRepository) Add(ctx context.Context, postID, userID int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.db.postIndex(postID) < 0 || r.db.userIndex(userID) < 0 {
		return store.ErrNotFound
	}
	for _, like := range r.db.likes {
		if like.postID == postID && like.userID == userID {
			return store.ErrConflict
		}
	}
	r.db.likes = append(r.db.likes, likeRow{postID: postID, userID: userID, createdAt: r.db.stamp()})
	return nil
}

func (r *LikeRepository) Remove(ctx context.Context, postID, userID int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i, like := range r.db.likes {
		if like.postID == postID && like.userID == userID {
			r.db.likes = append(r.db.likes[:i], r.db.likes[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}
