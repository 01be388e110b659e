package notify

import (
	"context"
	"log/slog"
)

// LogEmitter writes events to the structured log. Used in development and as
// a harmless default when no other sink is wired.
type LogEmitter struct {
	log *slog.Logger
}

// NewLog creates a log-backed emitter.
func NewLog(log *slog.Logger) *LogEmitter {
	return &LogEmitter{log: log.With("emitter", "log")}
}

// Emit logs the event. Never fails.
func (e *LogEmitter) Emit(ctx context.Context, event Event) error {
	e.log.InfoContext(ctx, "notification",
		slog.String("recipient_id", event.RecipientID.String()),
		slog.String("category", event.Category.String()),
		slog.String("title", event.Title),
		slog.String("action_ref", event.ActionReference),
	)
	return nil
}
