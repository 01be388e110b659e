package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fundmate/fundmate-backend/internal/domain"
	"github.com/fundmate/fundmate-backend/internal/service/pledge"
)

// pledgeService defines the minimal interface needed by PledgeHandler.
type pledgeService interface {
	Create(ctx context.Context, input pledge.CreateInput) (*domain.Pledge, error)
	Edit(ctx context.Context, input pledge.EditInput) (*domain.Pledge, error)
	SetStatus(ctx context.Context, pledgeID uuid.UUID, newStatus domain.PledgeStatus) (*domain.Pledge, error)
	Delete(ctx context.Context, pledgeID uuid.UUID) error
	Get(ctx context.Context, pledgeID uuid.UUID) (*domain.Pledge, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID, statuses ...domain.PledgeStatus) ([]*domain.Pledge, error)
	ListMine(ctx context.Context) ([]*domain.Pledge, error)
}

// PledgeHandler serves pledge REST endpoints.
type PledgeHandler struct {
	svc pledgeService
	log *slog.Logger
}

// NewPledgeHandler creates a PledgeHandler.
func NewPledgeHandler(svc pledgeService, logger *slog.Logger) *PledgeHandler {
	return &PledgeHandler{svc: svc, log: logger.With("handler", "pledge")}
}

type createPledgeRequest struct {
	CampaignID  uuid.UUID `json:"campaignId"`
	Amount      string    `json:"amount"`
	Message     *string   `json:"message,omitempty"`
	IsAnonymous bool      `json:"isAnonymous"`
}

type editPledgeRequest struct {
	Amount      *string `json:"amount,omitempty"`
	Message     *string `json:"message,omitempty"`
	IsAnonymous *bool   `json:"isAnonymous,omitempty"`
}

type setPledgeStatusRequest struct {
	Status string `json:"status"`
}

type pledgeResponse struct {
	ID            string     `json:"id"`
	CampaignID    string     `json:"campaignId"`
	ContributorID string     `json:"contributorId,omitempty"`
	Amount        string     `json:"amount"`
	Status        string     `json:"status"`
	Message       *string    `json:"message,omitempty"`
	IsAnonymous   bool       `json:"isAnonymous"`
	PromisedAt    time.Time  `json:"promisedAt"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func toPledgeResponse(p *domain.Pledge, viewerID uuid.UUID) pledgeResponse {
	resp := pledgeResponse{
		ID:          p.ID.String(),
		CampaignID:  p.CampaignID.String(),
		Amount:      p.Amount.String(),
		Status:      p.Status.String(),
		Message:     p.Message,
		IsAnonymous: p.IsAnonymous,
		PromisedAt:  p.PromisedAt,
		PaidAt:      p.PaidAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	// Anonymity is display-only: the owner still sees their own pledges.
	if !p.IsAnonymous || p.ContributorID == viewerID {
		resp.ContributorID = p.ContributorID.String()
	}
	return resp
}

// Create handles POST /v1/pledges.
func (h *PledgeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	result, err := h.svc.Create(r.Context(), pledge.CreateInput{
		CampaignID:  req.CampaignID,
		Amount:      amount,
		Message:     req.Message,
		IsAnonymous: req.IsAnonymous,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPledgeResponse(result, result.ContributorID))
}

// Edit handles PATCH /v1/pledges/{id}.
func (h *PledgeHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req editPledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := pledge.EditInput{
		PledgeID:    id,
		Message:     req.Message,
		IsAnonymous: req.IsAnonymous,
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid amount")
			return
		}
		input.Amount = &amount
	}

	result, err := h.svc.Edit(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPledgeResponse(result, result.ContributorID))
}

// SetStatus handles POST /v1/pledges/{id}/status.
func (h *PledgeHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req setPledgeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.SetStatus(r.Context(), id, domain.PledgeStatus(strings.ToUpper(req.Status)))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPledgeResponse(result, result.ContributorID))
}

// Delete handles DELETE /v1/pledges/{id}.
func (h *PledgeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /v1/pledges/{id}.
func (h *PledgeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPledgeResponse(result, viewerID(r)))
}

// ListByCampaign handles GET /v1/campaigns/{id}/pledges?status=PENDING.
func (h *PledgeHandler) ListByCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var statuses []domain.PledgeStatus
	for _, s := range r.URL.Query()["status"] {
		status := domain.PledgeStatus(strings.ToUpper(s))
		if !status.IsValid() {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
		statuses = append(statuses, status)
	}

	pledges, err := h.svc.ListByCampaign(r.Context(), id, statuses...)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	viewer := viewerID(r)
	out := make([]pledgeResponse, 0, len(pledges))
	for _, p := range pledges {
		out = append(out, toPledgeResponse(p, viewer))
	}
	writeJSON(w, http.StatusOK, out)
}

// ListMine handles GET /v1/pledges.
func (h *PledgeHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	pledges, err := h.svc.ListMine(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	viewer := viewerID(r)
	out := make([]pledgeResponse, 0, len(pledges))
	for _, p := range pledges {
		out = append(out, toPledgeResponse(p, viewer))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *PledgeHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if status, resp, ok := domainStatus(err); ok {
		writeJSON(w, status, resp)
		return
	}
	h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, "internal server error")
}
