package memory

import (
	"context"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/store"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
)

type FriendRequestRepository struct {
	db *DB
}

func (r *FriendRequestRepository) Exists(ctx context.Context, senderID, receiverID int) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, request := range r.db.requests {
		if request.SenderID == senderID && request.ReceiverID == receiverID {
			return true, nil
		}
	}
	return false, nil
}

func (r *FriendRequestRepository) Create(ctx context.Context, request types.FriendRequest) (types.FriendRequest, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.db.userIndex(request.SenderID) < 0 || r.db.userIndex(request.ReceiverID) < 0 {
		return types.FriendRequest{}, store.ErrNotFound
	}
	for _, existing := range r.db.requests {
		if existing.SenderID == request.SenderID && existing.ReceiverID == request.ReceiverID {
			return types.FriendRequest{}, store.ErrConflict
		}
	}
	if request.Status == "" {
		request.Status = types.FriendRequestPending
	}
	request.ID = r.db.id("friend_requests")
	request.CreatedAt = r.db.stamp()
	request.SenderName = ""
	r.db.requests = append(r.db.requests, request)
	return request, nil
}

func (r *FriendRequestRepository) ListPendingReceived(ctx context.Context, receiverID int) ([]types.FriendRequest, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	requests := make([]types.FriendRequest, 0)
	for i := len(r.db.requests) - 1; i >= 0; i-- {
		request := r.db.requests[i]
		if request.ReceiverID != receiverID || request.Status != types.FriendRequestPending {
			continue
		}
		name, ok := r.db.userName(request.SenderID)
		if !ok {
			continue
		}
		request.SenderName = name
		requests = append(requests, request)
	}
	return requests, nil
}

func (r *FriendRequestRepository) Respond(ctx context.Context, id, receiverID int, status types.FriendRequestStatus) (types.FriendRequest, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i, request := range r.db.requests {
		if request.ID != id {
			continue
		}
		if request.ReceiverID != receiverID || request.Status != types.FriendRequestPending {
			break
		}
		r.db.requests[i].Status = status
		return r.db.requests[i], nil
	}
	return types.FriendRequest{}, store.ErrNotFound
}
