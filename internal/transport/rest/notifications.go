package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/fundmate/fundmate-backend/internal/domain"
	"github.com/fundmate/fundmate-backend/pkg/ctxutil"
)

// notificationStore defines the minimal interface needed by NotificationHandler.
type notificationStore interface {
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit, offset int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, recipientID, notificationID uuid.UUID) error
}

// NotificationHandler serves the in-app notification inbox endpoints.
type NotificationHandler struct {
	store notificationStore
	log   *slog.Logger
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(store notificationStore, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{store: store, log: logger.With("handler", "notification")}
}

type notificationResponse struct {
	ID              string            `json:"id"`
	Category        string            `json:"category"`
	Title           string            `json:"title"`
	Message         string            `json:"message"`
	ActionReference string            `json:"actionReference,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	ReadAt          *time.Time        `json:"readAt,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

func toNotificationResponse(n *domain.Notification) notificationResponse {
	return notificationResponse{
		ID:              n.ID.String(),
		Category:        n.Category.String(),
		Title:           n.Title,
		Message:         n.Message,
		ActionReference: n.ActionReference,
		Metadata:        n.Metadata,
		ReadAt:          n.ReadAt,
		CreatedAt:       n.CreatedAt,
	}
}

// List handles GET /v1/notifications.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	q := r.URL.Query()
	notifications, err := h.store.ListByRecipient(r.Context(), userID, queryInt(q.Get("limit")), queryInt(q.Get("offset")))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, toNotificationResponse(n))
	}
	writeJSON(w, http.StatusOK, out)
}

// MarkRead handles POST /v1/notifications/{id}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.store.MarkRead(r.Context(), userID, id); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if status, resp, ok := domainStatus(err); ok {
		writeJSON(w, status, resp)
		return
	}
	h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, "internal server error")
}
