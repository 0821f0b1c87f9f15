package services

import (
	"context"
	"strings"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
)

// MessageRepository defines persistence operations for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, message types.Message) (types.Message, error)
	Conversation(ctx context.Context, userID, otherID int) ([]types.Message, error)
}

// UserLookup resolves users by id.
type UserLookup interface {
	GetByID(ctx context.Context, id int) (types.User, error)
}

type MessageService struct {
	messages MessageRepository
	users    UserLookup
	events   EventPublisher
}

func NewMessageService(messages MessageRepository, users UserLookup, events EventPublisher) *MessageService {
	return &MessageService{messages: messages, users: users, events: events}
}

// Send delivers a non-empty message from senderID to an existing receiver.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID int, content string) (types.Message, error) {
	content = strings.TrimSpace(content)
	if receiverID < 1 || content == "" {
		return types.Message{}, ErrMessageInvalid
	}

	if _, err := s.users.GetByID(ctx, receiverID); err != nil {
		return types.Message{}, notFoundAs(err, ErrReceiverNotFound)
	}

	message, err := s.messages.Create(ctx, types.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	})
	if err != nil {
		return types.Message{}, notFoundAs(err, ErrReceiverNotFound)
	}

	publish(ctx, s.events, types.Event{
		Type:        types.EventMessageSent,
		ActorID:     senderID,
		RecipientID: receiverID,
		SubjectID:   message.ID,
		OccurredAt:  message.CreatedAt,
	})
	return message, nil
}

// Conversation returns the messages exchanged between userID and otherID,
// in both directions, oldest first.
func (s *MessageService) Conversation(ctx context.Context, userID, otherID int) ([]types.Message, error) {
	return s.messages.Conversation(ctx, userID, otherID)
}
