package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
)

const (
	attrEventType = "event_type"
	attrEventID   = "event_id"
)

// EventBus publishes and consumes activity events as JSON on one channel.
type EventBus struct {
	backend Backend
	channel string
}

func NewEventBus(backend Backend, channel string) (*EventBus, error) {
	if backend == nil {
		return nil, errors.New("events backend is required")
	}
	if strings.TrimSpace(channel) == "" {
		return nil, errors.New("events channel is required")
	}
	return &EventBus{backend: backend, channel: channel}, nil
}

// Publish encodes event and sends it to the bus channel.
func (b *EventBus) Publish(ctx context.Context, event types.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	_, err = b.backend.Publish(ctx, b.channel, data, map[string]string{
		attrEventType: string(event.Type),
		attrEventID:   event.ID,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

// Listen delivers decoded events to handler until ctx is done. Payloads
// that are not events are acknowledged and dropped.
func (b *EventBus) Listen(ctx context.Context, handler func(ctx context.Context, event types.Event) error) error {
	return b.backend.Subscribe(ctx, b.channel, func(ctx context.Context, msg Message) error {
		var event types.Event
		if err := json.Unmarshal(msg.Data, &event); err != nil || event.Type == "" {
			return nil
		}
		return handler(ctx, event)
	})
}

// Channel returns the channel the bus publishes on.
func (b *EventBus) Channel() string {
	return b.channel
}

// Close closes the underlying backend.
func (b *EventBus) Close() error {
	return b.backend.Close()
}
