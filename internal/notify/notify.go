// Package notify defines the notification emitter boundary. Lifecycle
// services and the scheduler hand structured events to an Emitter; fan-out
// to in-app rows and outbound channels happens behind it. Emitting is always
// best-effort: callers log failures and never roll back the state change
// that produced the event.
package notify

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fundmate/fundmate-backend/internal/domain"
)

// Event is the single shape crossing the emitter boundary.
type Event struct {
	RecipientID     uuid.UUID
	Category        domain.NotificationCategory
	Title           string
	Message         string
	ActionReference string
	Metadata        map[string]string
}

// Emitter delivers events to recipients.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// EmitBestEffort sends the event and logs a warning on failure. It exists so
// every call site treats emitter errors the same way: swallowed, never
// propagated to the caller of the triggering operation.
func EmitBestEffort(ctx context.Context, emitter Emitter, log *slog.Logger, event Event) {
	if err := emitter.Emit(ctx, event); err != nil {
		log.WarnContext(ctx, "notification emit failed",
			slog.String("recipient_id", event.RecipientID.String()),
			slog.String("category", event.Category.String()),
			slog.String("title", event.Title),
			slog.String("error", err.Error()),
		)
	}
}
