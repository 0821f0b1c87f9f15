package memory

import (
	"context"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/store"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
)

type MessageRepository struct {
	db *DB
}

func (r *MessageRepository) Create(ctx context.Context, message types.Message) (types.Message, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.db.userIndex(message.SenderID) < 0 || r.db.userIndex(message.ReceiverID) < 0 {
		return types.Message{}, store.ErrNotFound
	}
	message.ID = r.db.id("messages")
	message.CreatedAt = r.db.stamp()
	message.SenderName = ""
	r.db.messages = append(r.db.messages, message)
	return message, nil
}

func (r *MessageRepository) Conversation(ctx context.Context, userID, otherID int) ([]types.Message, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	messages := make([]types.Message, 0)
	for _, message := range r.db.messages {
		forward := message.SenderID == userID && message.ReceiverID == otherID
		backward := message.SenderID == otherID && message.ReceiverID == userID
		if !forward && !backward {
			continue
		}
		message.SenderName, _ = r.db.userName(message.SenderID)
		messages = append(messages, message)
	}
	return messages, nil
}
