package store

import (
	"context"
	"database/sql"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
)

// CommentRepository handles persistence for comments.
type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// ListByPost returns a post's comments in chronological order.
func (r *CommentRepository) ListByPost(ctx context.Context, postID int) ([]types.Comment, error) {
	const query = `
		SELECT c.id, c.post_id, c.user_id, c.content, c.created_at, u.name
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC, c.id ASC`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]types.Comment, 0)
	for rows.Next() {
		var comment types.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.UserID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UserName,
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

func (r *CommentRepository) Create(ctx context.Context, comment types.Comment) (types.Comment, error) {
	comment.CreatedAt = now()

	const query = `
		INSERT INTO comments (post_id, user_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		comment.PostID,
		comment.UserID,
		comment.Content,
		comment.CreatedAt,
	).Scan(&comment.ID); err != nil {
		return types.Comment{}, translateWriteError(err)
	}
	return comment, nil
}
