package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fundmate/fundmate-backend/internal/domain"
)

type notificationRepo interface {
	Insert(ctx context.Context, n *domain.Notification) error
}

// InAppEmitter persists one notification row per event. Outbound channels
// (email, SMS) read from the same table asynchronously and respect per-user
// preferences there, outside this engine.
type InAppEmitter struct {
	repo notificationRepo
}

// NewInApp creates an in-app emitter backed by the notification repository.
func NewInApp(repo notificationRepo) *InAppEmitter {
	return &InAppEmitter{repo: repo}
}

// Emit stores the event as an unread in-app notification.
func (e *InAppEmitter) Emit(ctx context.Context, event Event) error {
	if event.RecipientID == uuid.Nil {
		return fmt.Errorf("notify: event has no recipient")
	}
	if !event.Category.IsValid() {
		return fmt.Errorf("notify: invalid category %q", event.Category)
	}

	n := &domain.Notification{
		ID:              uuid.New(),
		RecipientID:     event.RecipientID,
		Category:        event.Category,
		Title:           event.Title,
		Message:         event.Message,
		ActionReference: event.ActionReference,
		Metadata:        event.Metadata,
	}

	if err := e.repo.Insert(ctx, n); err != nil {
		return fmt.Errorf("notify: insert notification: %w", err)
	}

	return nil
}
