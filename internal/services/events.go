package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
	"github.com/google/uuid"
)

// EventPublisher fans domain events out to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event types.Event) error
}

// publish emits an event after the triggering write has committed. Delivery
// is best effort: failures are logged and never fail the request.
func publish(ctx context.Context, publisher EventPublisher, event types.Event) {
	if publisher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if err := publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "publish event failed",
			"event_type", event.Type,
			"event_id", event.ID,
			"err", err,
		)
	}
}
