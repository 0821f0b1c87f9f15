package store

import (
	"context"
	"database/sql"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
)

// MessageRepository handles persistence for direct messages.
type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, message types.Message) (types.Message, error) {
	message.CreatedAt = now()

	const query = `
		INSERT INTO messages (sender_id, receiver_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		message.SenderID,
		message.ReceiverID,
		message.Content,
		message.CreatedAt,
	).Scan(&message.ID); err != nil {
		return types.Message{}, translateWriteError(err)
	}
	return message, nil
}

// Conversation returns every message exchanged between the two users in
// either direction, oldest first.
func (r *MessageRepository) Conversation(ctx context.Context, userID, otherID int) ([]types.Message, error) {
	const query = `
		SELECT m.id, m.sender_id, m.receiver_id, m.content, m.created_at, u.name
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE (m.sender_id = $1 AND m.receiver_id = $2)
		   OR (m.sender_id = $2 AND m.receiver_id = $1)
		ORDER BY m.created_at ASC, m.id ASC`
	rows, err := r.db.QueryContext(ctx, query, userID, otherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]types.Message, 0)
	for rows.Next() {
		var message types.Message
		if err := rows.Scan(
			&message.ID,
			&message.SenderID,
			&message.ReceiverID,
			&message.Content,
			&message.CreatedAt,
			&message.SenderName,
		); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}
