package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	ListByPost(ctx context.Context, postID int) ([]types.Comment, error)
	Create(ctx context.Context, comment types.Comment) (types.Comment, error)
}

// PostLookup resolves posts by id.
type PostLookup interface {
	Get(ctx context.Context, id int) (types.Post, error)
}

type CommentService struct {
	comments CommentRepository
	posts    PostLookup
	events   EventPublisher
}

func NewCommentService(comments CommentRepository, posts PostLookup, events EventPublisher) *CommentService {
	return &CommentService{comments: comments, posts: posts, events: events}
}

// ListByPost returns the comments on postID, oldest first.
func (s *CommentService) ListByPost(ctx context.Context, postID int) ([]types.Comment, error) {
	return s.comments.ListByPost(ctx, postID)
}

// Create adds a comment of 1 to types.MaxCommentLength characters.
func (s *CommentService) Create(ctx context.Context, userID, postID int, content string) (types.Comment, error) {
	content = strings.TrimSpace(content)
	if n := utf8.RuneCountInString(content); n == 0 || n > types.MaxCommentLength {
		return types.Comment{}, ErrCommentContent
	}

	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		return types.Comment{}, notFoundAs(err, ErrPostNotFound)
	}

	comment, err := s.comments.Create(ctx, types.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	})
	if err != nil {
		return types.Comment{}, notFoundAs(err, ErrPostNotFound)
	}

	publish(ctx, s.events, types.Event{
		Type:        types.EventCommentCreated,
		ActorID:     userID,
		RecipientID: post.UserID,
		SubjectID:   comment.ID,
		Detail:      map[string]string{"post_id": itoa(post.ID)},
		OccurredAt:  comment.CreatedAt,
	})
	return comment, nil
}
