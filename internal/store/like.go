package store

import (
	"context"
	"database/sql"
)

// LikeRepository handles persistence for post likes.
type LikeRepository struct {
	db *sql.DB
}

func NewLikeRepository(db *sql.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) Exists(ctx context.Context, postID, userID int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, postID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Add records a like. A second like for the same pair yields ErrConflict.
func (r *LikeRepository) Add(ctx context.Context, postID, userID int) error {
	const query = `INSERT INTO post_likes (post_id, user_id, created_at) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, postID, userID, now()); err != nil {
		return translateWriteError(err)
	}
	return nil
}

// Remove deletes a like, returning ErrNotFound when the pair never liked.
func (r *LikeRepository) Remove(ctx context.Context, postID, userID int) error {
	const query = `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
