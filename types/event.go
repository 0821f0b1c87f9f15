package types

import "time"

// EventType names a domain event published after a successful mutation.
type EventType string

const (
	EventPostCreated            EventType = "post.created"
	EventPostLiked              EventType = "post.liked"
	EventCommentCreated         EventType = "comment.created"
	EventMessageSent            EventType = "message.sent"
	EventFriendRequestSent      EventType = "friend_request.sent"
	EventFriendRequestResponded EventType = "friend_request.responded"
)

// Event is the broker payload describing a completed mutation.
type Event struct {
	// ID uniquely identifies the event.
	ID string `json:"id"`

	// Type is the kind of mutation that happened.
	Type EventType `json:"type"`

	// ActorID is the user who performed the action.
	ActorID int `json:"actor_id"`

	// RecipientID is the user the action is directed at, when there is one
	// (post owner, message receiver, friend request counterpart).
	RecipientID int `json:"recipient_id,omitempty"`

	// SubjectID is the primary key of the affected row.
	SubjectID int `json:"subject_id"`

	// Detail carries event-specific extras such as a friend request status.
	Detail map[string]string `json:"detail,omitempty"`

	// OccurredAt is when the mutation was committed.
	OccurredAt time.Time `json:"occurred_at"`
}
