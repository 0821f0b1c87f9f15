package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/mq"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
	"github.com/spf13/cobra"
)

// eventsCmd groups commands that work with the activity event channel.
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect activity events",
}

var eventsListenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Log every activity event published on the configured channel",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		backend, err := mq.OpenBackend(ctx, cfg)
		if err != nil {
			return err
		}
		if backend == nil {
			return fmt.Errorf("EVENTS_BACKEND is %q, nothing to listen to", cfg.Events.Backend)
		}
		bus, err := mq.NewEventBus(backend, cfg.Events.Channel)
		if err != nil {
			_ = backend.Close()
			return err
		}
		defer bus.Close()

		slog.Info("listening for events", "backend", cfg.Events.Backend, "channel", bus.Channel())
		err = bus.Listen(ctx, func(ctx context.Context, event types.Event) error {
			slog.InfoContext(ctx, "event",
				"id", event.ID,
				"type", event.Type,
				"actor_id", event.ActorID,
				"recipient_id", event.RecipientID,
				"subject_id", event.SubjectID,
				"detail", event.Detail,
				"occurred_at", event.OccurredAt,
			)
			return nil
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsListenCmd)
}
