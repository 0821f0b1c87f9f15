package types

import "time"

// FriendRequestStatus is the lifecycle state of a friend request.
type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestRejected FriendRequestStatus = "rejected"
)

// FriendRequest is an invitation from Sender to Receiver. Only the receiver
// may change its status, and only while it is pending.
type FriendRequest struct {
	ID         int                 `json:"id" db:"id"`
	SenderID   int                 `json:"sender_id" db:"sender_id"`
	ReceiverID int                 `json:"receiver_id" db:"receiver_id"`
	Status     FriendRequestStatus `json:"status" db:"status"`
	CreatedAt  time.Time           `json:"created_at" db:"created_at"`

	// SenderName is populated by the received-requests query.
	SenderName string `json:"sender_name,omitempty"`
}
