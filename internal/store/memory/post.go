package memory

import (
	"context"
	"time"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/store"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
)

type PostRepository struct {
	db *DB
}

func (r *PostRepository) Create(ctx context.Context, post types.Post) (types.Post, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if !post.HasBody() {
		return types.Post{}, store.ErrConflict
	}
	post.ID = r.db.id("posts")
	post.CreatedAt = r.db.stamp()
	r.db.posts = append(r.db.posts, post)
	return post, nil
}

func (r *PostRepository) Get(ctx context.Context, id int) (types.Post, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if i := r.db.postIndex(id); i >= 0 {
		return r.db.posts[i], nil
	}
	return types.Post{}, store.ErrNotFound
}

// feed projects posts newest first. When requireAuthor is set, posts whose
// author no longer exists are skipped, matching an inner join.
func (r *PostRepository) feed(match func(types.Post) bool, requireAuthor bool) []types.FeedPost {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	posts := make([]types.FeedPost, 0)
	for i := len(r.db.posts) - 1; i >= 0; i-- {
		post := r.db.posts[i]
		if !match(post) {
			continue
		}
		name, ok := r.db.userName(post.UserID)
		if !ok && requireAuthor {
			continue
		}
		posts = append(posts, types.FeedPost{
			Post:       post,
			AuthorName: name,
			LikeCount:  r.db.likeCount(post.ID),
		})
	}
	return posts
}

func (r *PostRepository) List(ctx context.Context) ([]types.FeedPost, error) {
	return r.feed(func(types.Post) bool { return true }, true), nil
}

func (r *PostRepository) ListByUser(ctx context.Context, userID int) ([]types.FeedPost, error) {
	return r.feed(func(p types.Post) bool { return p.UserID == userID }, false), nil
}

func (r *PostRepository) ListSince(ctx context.Context, after time.Time) ([]types.FeedPost, error) {
	return r.feed(func(p types.Post) bool { return p.CreatedAt.After(after) }, true), nil
}

func (r *PostRepository) CountSince(ctx context.Context, after time.Time) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	count := 0
	for _, post := range r.db.posts {
		if post.CreatedAt.After(after) {
			count++
		}
	}
	return count, nil
}

func (r *PostRepository) UpdateContent(ctx context.Context, id int, content string) (types.Post, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := r.db.postIndex(id)
	if i < 0 {
		return types.Post{}, store.ErrNotFound
	}
	r.db.posts[i].Content = content
	return r.db.posts[i], nil
}

func (r *PostRepository) Delete(ctx context.Context, id int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := r.db.postIndex(id)
	if i < 0 {
		return store.ErrNotFound
	}
	r.db.deletePostCascade(i)
	return nil
}
