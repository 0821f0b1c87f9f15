package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
)

// PostRepository handles persistence for posts and their feed projections.
type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

const feedColumns = `
	p.id, p.user_id, p.content, p.media_path, p.created_at,
	COALESCE(u.name, ''),
	(SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id)`

func scanPost(row rowScanner) (types.Post, error) {
	var post types.Post
	var content, media sql.NullString
	if err := row.Scan(&post.ID, &post.UserID, &content, &media, &post.CreatedAt); err != nil {
		return types.Post{}, err
	}
	post.Content = content.String
	post.MediaPath = media.String
	return post, nil
}

func scanFeedPosts(rows *sql.Rows) ([]types.FeedPost, error) {
	defer rows.Close()

	posts := make([]types.FeedPost, 0)
	for rows.Next() {
		var post types.FeedPost
		var content, media sql.NullString
		if err := rows.Scan(
			&post.ID,
			&post.UserID,
			&content,
			&media,
			&post.CreatedAt,
			&post.AuthorName,
			&post.LikeCount,
		); err != nil {
			return nil, err
		}
		post.Content = content.String
		post.MediaPath = media.String
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) Create(ctx context.Context, post types.Post) (types.Post, error) {
	post.CreatedAt = now()

	const query = `
		INSERT INTO posts (user_id, content, media_path, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		post.UserID,
		nullString(post.Content),
		nullString(post.MediaPath),
		post.CreatedAt,
	).Scan(&post.ID); err != nil {
		return types.Post{}, translateWriteError(err)
	}
	return post, nil
}

func (r *PostRepository) Get(ctx context.Context, id int) (types.Post, error) {
	const query = `SELECT id, user_id, content, media_path, created_at FROM posts WHERE id = $1`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Post{}, ErrNotFound
		}
		return types.Post{}, err
	}
	return post, nil
}

// List returns every post whose author still exists, newest first.
func (r *PostRepository) List(ctx context.Context) ([]types.FeedPost, error) {
	const query = `
		SELECT ` + feedColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC, p.id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanFeedPosts(rows)
}

// ListByUser returns one author's posts, newest first.
func (r *PostRepository) ListByUser(ctx context.Context, userID int) ([]types.FeedPost, error) {
	const query = `
		SELECT ` + feedColumns + `
		FROM posts p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC, p.id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return scanFeedPosts(rows)
}

// ListSince returns posts created strictly after the given instant, newest first.
func (r *PostRepository) ListSince(ctx context.Context, after time.Time) ([]types.FeedPost, error) {
	const query = `
		SELECT ` + feedColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.created_at > $1
		ORDER BY p.created_at DESC, p.id DESC`
	rows, err := r.db.QueryContext(ctx, query, after)
	if err != nil {
		return nil, err
	}
	return scanFeedPosts(rows)
}

// CountSince counts posts created strictly after the given instant.
func (r *PostRepository) CountSince(ctx context.Context, after time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM posts WHERE created_at > $1`
	var count int
	if err := r.db.QueryRowContext(ctx, query, after).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostRepository) UpdateContent(ctx context.Context, id int, content string) (types.Post, error) {
	const query = `
		UPDATE posts
		SET content = $1
		WHERE id = $2
		RETURNING id, user_id, content, media_path, created_at`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, nullString(content), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Post{}, ErrNotFound
		}
		return types.Post{}, err
	}
	return post, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM posts WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
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
