package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/store"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post types.Post) (types.Post, error)
	Get(ctx context.Context, id int) (types.Post, error)
	List(ctx context.Context) ([]types.FeedPost, error)
	ListByUser(ctx context.Context, userID int) ([]types.FeedPost, error)
	ListSince(ctx context.Context, after time.Time) ([]types.FeedPost, error)
	CountSince(ctx context.Context, after time.Time) (int, error)
	UpdateContent(ctx context.Context, id int, content string) (types.Post, error)
	Delete(ctx context.Context, id int) error
}

// LikeRepository defines persistence operations for post likes.
type LikeRepository interface {
	Exists(ctx context.Context, postID, userID int) (bool, error)
	Add(ctx context.Context, postID, userID int) error
	Remove(ctx context.Context, postID, userID int) error
}

// PostService encapsulates post publishing, feeds and likes.
type PostService struct {
	posts  PostRepository
	likes  LikeRepository
	media  *MediaService
	events EventPublisher
}

func NewPostService(posts PostRepository, likes LikeRepository, media *MediaService, events EventPublisher) *PostService {
	return &PostService{posts: posts, likes: likes, media: media, events: events}
}

// Create publishes a post for userID. At least one of content and upload
// must be present.
func (s *PostService) Create(ctx context.Context, userID int, content string, upload *Upload) (types.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" && upload == nil {
		return types.Post{}, ErrPostBodyRequired
	}

	var mediaKey string
	if upload != nil {
		if s.media == nil {
			return types.Post{}, errors.New("media storage is not configured")
		}
		key, err := s.media.Save(ctx, userID, *upload)
		if err != nil {
			return types.Post{}, err
		}
		mediaKey = key
	}

	post, err := s.posts.Create(ctx, types.Post{
		UserID:    userID,
		Content:   content,
		MediaPath: mediaKey,
	})
	if err != nil {
		if mediaKey != "" {
			s.media.Remove(ctx, mediaKey)
		}
		return types.Post{}, err
	}

	publish(ctx, s.events, types.Event{
		Type:       types.EventPostCreated,
		ActorID:    userID,
		SubjectID:  post.ID,
		OccurredAt: post.CreatedAt,
	})
	return post, nil
}

func (s *PostService) List(ctx context.Context) ([]types.FeedPost, error) {
	return s.posts.List(ctx)
}

func (s *PostService) ListByUser(ctx context.Context, userID int) ([]types.FeedPost, error) {
	return s.posts.ListByUser(ctx, userID)
}

// ListSince returns posts created strictly after the given instant.
func (s *PostService) ListSince(ctx context.Context, after time.Time) ([]types.FeedPost, error) {
	return s.posts.ListSince(ctx, after)
}

// CountSince counts posts created strictly after the given instant.
func (s *PostService) CountSince(ctx context.Context, after time.Time) (int, error) {
	return s.posts.CountSince(ctx, after)
}

func (s *PostService) get(ctx context.Context, postID int) (types.Post, error) {
	post, err := s.posts.Get(ctx, postID)
	if errors.Is(err, store.ErrNotFound) {
		return types.Post{}, ErrPostNotFound
	}
	return post, err
}

// UpdateContent replaces the text of a post owned by actorID. Media is
// left untouched.
func (s *PostService) UpdateContent(ctx context.Context, actorID, postID int, content string) (types.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return types.Post{}, ErrPostContentRequired
	}

	post, err := s.get(ctx, postID)
	if err != nil {
		return types.Post{}, err
	}
	if post.UserID != actorID {
		return types.Post{}, ErrForeignPostEdit
	}

	updated, err := s.posts.UpdateContent(ctx, postID, content)
	if errors.Is(err, store.ErrNotFound) {
		return types.Post{}, ErrPostNotFound
	}
	return updated, err
}

// Delete removes a post owned by actorID along with its media object.
func (s *PostService) Delete(ctx context.Context, actorID, postID int) error {
	post, err := s.get(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != actorID {
		return ErrForeignPostDelete
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	if post.MediaPath != "" && s.media != nil {
		s.media.Remove(ctx, post.MediaPath)
	}
	return nil
}

// Like records that userID likes postID. Each user likes a post at most once.
func (s *PostService) Like(ctx context.Context, userID, postID int) error {
	post, err := s.get(ctx, postID)
	if err != nil {
		return err
	}

	liked, err := s.likes.Exists(ctx, postID, userID)
	if err != nil {
		return err
	}
	if liked {
		return ErrAlreadyLiked
	}

	if err := s.likes.Add(ctx, postID, userID); err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			return ErrAlreadyLiked
		case errors.Is(err, store.ErrNotFound):
			return ErrPostNotFound
		}
		return err
	}

	publish(ctx, s.events, types.Event{
		Type:        types.EventPostLiked,
		ActorID:     userID,
		RecipientID: post.UserID,
		SubjectID:   post.ID,
	})
	return nil
}

// Unlike withdraws a like previously recorded by userID.
func (s *PostService) Unlike(ctx context.Context, userID, postID int) error {
	if err := s.likes.Remove(ctx, postID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotLiked
		}
		return err
	}
	return nil
}
