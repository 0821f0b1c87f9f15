package services

import (
	"context"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
	"golang.org/x/sync/errgroup"
)

// NotificationRepository reads activity on a user's posts.
type NotificationRepository interface {
	RecentLikes(ctx context.Context, ownerID, limit int) ([]types.LikeNotification, error)
	RecentComments(ctx context.Context, ownerID, limit int) ([]types.CommentNotification, error)
}

type NotificationService struct {
	repo NotificationRepository
}

func NewNotificationService(repo NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// ForUser returns the latest likes and comments other users left on
// userID's posts. The two lists are capped independently.
func (s *NotificationService) ForUser(ctx context.Context, userID int) (types.Notifications, error) {
	var result types.Notifications

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		likes, err := s.repo.RecentLikes(gctx, userID, types.NotificationLimit)
		result.Likes = likes
		return err
	})
	g.Go(func() error {
		comments, err := s.repo.RecentComments(gctx, userID, types.NotificationLimit)
		result.Comments = comments
		return err
	})
	if err := g.Wait(); err != nil {
		return types.Notifications{}, err
	}

	if result.Likes == nil {
		result.Likes = []types.LikeNotification{}
	}
	if result.Comments == nil {
		result.Comments = []types.CommentNotification{}
	}
	return result, nil
}
