package mq

import (
	"context"
	"fmt"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/config"
)

// Message represents a broker-agnostic payload delivered to subscribers.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes a message. Return an error to signal a retry/nack.
type Handler func(ctx context.Context, msg Message) error

// Backend defines the broker-agnostic operations used by the app.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}

// OpenBackend connects to the broker named by cfg.Events.Backend. It
// returns a nil Backend when events are disabled.
func OpenBackend(ctx context.Context, cfg config.Config) (Backend, error) {
	var (
		backend Backend
		err     error
	)
	switch cfg.Events.Backend {
	case "", config.EventsNone:
		return nil, nil
	case config.EventsRabbitMQ:
		backend, err = NewRabbitMQClient(cfg.RabbitMQ)
	case config.EventsPubSub:
		backend, err = NewPubSubClient(ctx, cfg.PubSub)
	case config.EventsRedis:
		backend, err = NewRedisClient(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported events backend %q", cfg.Events.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Events.Backend, err)
	}
	return backend, nil
}
