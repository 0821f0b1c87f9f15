package services

import (
	"context"
	"errors"
	"strings"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/store"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
)

// FriendRequestRepository defines persistence operations for friend requests.
type FriendRequestRepository interface {
	Exists(ctx context.Context, senderID, receiverID int) (bool, error)
	Create(ctx context.Context, request types.FriendRequest) (types.FriendRequest, error)
	ListPendingReceived(ctx context.Context, receiverID int) ([]types.FriendRequest, error)
	Respond(ctx context.Context, id, receiverID int, status types.FriendRequestStatus) (types.FriendRequest, error)
}

// Friend request responses.
const (
	ActionAccept = "accept"
	ActionReject = "reject"
)

type FriendRequestService struct {
	requests FriendRequestRepository
	users    UserLookup
	events   EventPublisher
}

func NewFriendRequestService(requests FriendRequestRepository, users UserLookup, events EventPublisher) *FriendRequestService {
	return &FriendRequestService{requests: requests, users: users, events: events}
}

// Send creates a pending request from senderID to receiverID. A sender may
// address a given receiver only once, whatever became of earlier requests.
func (s *FriendRequestService) Send(ctx context.Context, senderID, receiverID int) (types.FriendRequest, error) {
	if receiverID < 1 || receiverID == senderID {
		return types.FriendRequest{}, ErrInvalidReceiver
	}

	if _, err := s.users.GetByID(ctx, receiverID); err != nil {
		return types.FriendRequest{}, notFoundAs(err, ErrUserNotFound)
	}

	exists, err := s.requests.Exists(ctx, senderID, receiverID)
	if err != nil {
		return types.FriendRequest{}, err
	}
	if exists {
		return types.FriendRequest{}, ErrFriendRequestExists
	}

	request, err := s.requests.Create(ctx, types.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     types.FriendRequestPending,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			return types.FriendRequest{}, ErrFriendRequestExists
		case errors.Is(err, store.ErrNotFound):
			return types.FriendRequest{}, ErrUserNotFound
		}
		return types.FriendRequest{}, err
	}

	publish(ctx, s.events, types.Event{
		Type:        types.EventFriendRequestSent,
		ActorID:     senderID,
		RecipientID: receiverID,
		SubjectID:   request.ID,
		OccurredAt:  request.CreatedAt,
	})
	return request, nil
}

// Received lists the pending requests addressed to userID, newest first.
func (s *FriendRequestService) Received(ctx context.Context, userID int) ([]types.FriendRequest, error) {
	return s.requests.ListPendingReceived(ctx, userID)
}

// Respond accepts or rejects a pending request addressed to userID.
func (s *FriendRequestService) Respond(ctx context.Context, userID, requestID int, action string) (types.FriendRequest, error) {
	var status types.FriendRequestStatus
	switch strings.ToLower(strings.TrimSpace(action)) {
	case ActionAccept:
		status = types.FriendRequestAccepted
	case ActionReject:
		status = types.FriendRequestRejected
	default:
		return types.FriendRequest{}, ErrInvalidFriendResponse
	}
	if requestID < 1 {
		return types.FriendRequest{}, ErrInvalidFriendResponse
	}

	request, err := s.requests.Respond(ctx, requestID, userID, status)
	if err != nil {
		return types.FriendRequest{}, notFoundAs(err, ErrFriendRequestNotFound)
	}

	publish(ctx, s.events, types.Event{
		Type:        types.EventFriendRequestResponded,
		ActorID:     userID,
		RecipientID: request.SenderID,
		SubjectID:   request.ID,
		Detail:      map[string]string{"status": string(request.Status)},
	})
	return request, nil
}
