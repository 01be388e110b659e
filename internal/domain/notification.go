package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app notification row. The notify emitter persists one
// per recipient; fan-out to outbound channels happens behind the emitter
// boundary and never blocks the state transition that produced the event.
type Notification struct {
	ID              uuid.UUID
	RecipientID     uuid.UUID
	Category        NotificationCategory
	Title           string
	Message         string
	ActionReference string
	Metadata        map[string]string
	ReadAt          *time.Time
	CreatedAt       time.Time
}

// User is a minimal account reference. Account management (registration,
// KYC, profiles) lives outside this engine; the engine only needs identity
// and role for authorization decisions.
type User struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	Role        UserRole
	CreatedAt   time.Time
}
