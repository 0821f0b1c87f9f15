package mq

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisClient fans messages out over Redis PUBLISH/SUBSCRIBE. Delivery is
// at most once: subscribers that are offline miss messages.
type RedisClient struct {
	client *redis.Client
}

// redisEnvelope carries the id and attributes Redis has no slot for.
type redisEnvelope struct {
	ID         string            `json:"id"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Data       json.RawMessage   `json:"data"`
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*RedisClient, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisClient{client: client}, nil
}

// Publish sends a message to the named Redis channel. data must be JSON.
func (r *RedisClient) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	if strings.TrimSpace(channel) == "" {
		return "", errors.New("redis channel is required")
	}
	if !json.Valid(data) {
		return "", errors.New("redis payload must be JSON")
	}

	envelope := redisEnvelope{ID: uuid.NewString(), Attributes: attrs, Data: data}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return "", err
	}
	if err := r.client.Publish(ctx, channel, payload).Err(); err != nil {
		return "", err
	}
	return envelope.ID, nil
}

// Subscribe consumes messages from the named channel until ctx is done.
// Redis has no redelivery, so handler errors are dropped.
func (r *RedisClient) Subscribe(ctx context.Context, channel string, handler Handler) error {
	if strings.TrimSpace(channel) == "" {
		return errors.New("redis channel is required")
	}

	sub := r.client.Subscribe(ctx, channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return errors.New("redis subscription closed")
			}
			var envelope redisEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
				continue
			}
			_ = handler(ctx, Message{
				ID:         envelope.ID,
				Data:       envelope.Data,
				Attributes: envelope.Attributes,
			})
		}
	}
}

// Close closes the Redis connection pool.
func (r *RedisClient) Close() error {
	return r.client.Close()
}
