package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
)

// FriendRequestRepository handles persistence for friend requests.
type FriendRequestRepository struct {
	db *sql.DB
}

func NewFriendRequestRepository(db *sql.DB) *FriendRequestRepository {
	return &FriendRequestRepository{db: db}
}

// Exists reports whether senderID has ever sent receiverID a request,
// whatever its current status.
func (r *FriendRequestRepository) Exists(ctx context.Context, senderID, receiverID int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM friend_requests WHERE sender_id = $1 AND receiver_id = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, senderID, receiverID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *FriendRequestRepository) Create(ctx context.Context, request types.FriendRequest) (types.FriendRequest, error) {
	request.CreatedAt = now()
	if request.Status == "" {
		request.Status = types.FriendRequestPending
	}

	const query = `
		INSERT INTO friend_requests (sender_id, receiver_id, status, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		request.SenderID,
		request.ReceiverID,
		request.Status,
		request.CreatedAt,
	).Scan(&request.ID); err != nil {
		return types.FriendRequest{}, translateWriteError(err)
	}
	return request, nil
}

// ListPendingReceived returns pending requests addressed to receiverID, newest first.
func (r *FriendRequestRepository) ListPendingReceived(ctx context.Context, receiverID int) ([]types.FriendRequest, error) {
	const query = `
		SELECT fr.id, fr.sender_id, fr.receiver_id, fr.status, fr.created_at, u.name
		FROM friend_requests fr
		JOIN users u ON u.id = fr.sender_id
		WHERE fr.receiver_id = $1 AND fr.status = 'pending'
		ORDER BY fr.created_at DESC, fr.id DESC`
	rows, err := r.db.QueryContext(ctx, query, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]types.FriendRequest, 0)
	for rows.Next() {
		var request types.FriendRequest
		if err := rows.Scan(
			&request.ID,
			&request.SenderID,
			&request.ReceiverID,
			&request.Status,
			&request.CreatedAt,
			&request.SenderName,
		); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

// Respond moves a pending request addressed to receiverID into status.
// Requests that do not exist, belong to someone else or were already
// answered all yield ErrNotFound.
func (r *FriendRequestRepository) Respond(ctx context.Context, id, receiverID int, status types.FriendRequestStatus) (types.FriendRequest, error) {
	const query = `
		UPDATE friend_requests
		SET status = $1
		WHERE id = $2 AND receiver_id = $3 AND status = 'pending'
		RETURNING id, sender_id, receiver_id, status, created_at`
	var request types.FriendRequest
	err := r.db.QueryRowContext(ctx, query, status, id, receiverID).Scan(
		&request.ID,
		&request.SenderID,
		&request.ReceiverID,
		&request.Status,
		&request.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.FriendRequest{}, ErrNotFound
		}
		return types.FriendRequest{}, err
	}
	return request, nil
}
