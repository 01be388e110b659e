package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fundmate/fundmate-backend/internal/domain"
	"github.com/fundmate/fundmate-backend/internal/service/campaign"
	"github.com/fundmate/fundmate-backend/internal/transport/middleware"
)

// campaignService defines the minimal interface needed by CampaignHandler.
type campaignService interface {
	Create(ctx context.Context, input campaign.CreateInput) (*domain.Campaign, error)
	Update(ctx context.Context, input campaign.UpdateInput) (*domain.Campaign, error)
	Submit(ctx context.Context, campaignID uuid.UUID) (*domain.Campaign, error)
	Approve(ctx context.Context, campaignID uuid.UUID) (*domain.Campaign, error)
	Reject(ctx context.Context, campaignID uuid.UUID, reason string) (*domain.Campaign, error)
	Suspend(ctx context.Context, campaignID uuid.UUID, reason string) (*domain.Campaign, error)
	Reactivate(ctx context.Context, campaignID uuid.UUID) (*domain.Campaign, error)
	Get(ctx context.Context, campaignID uuid.UUID) (*domain.Campaign, error)
	List(ctx context.Context, input campaign.ListInput) ([]*domain.Campaign, error)
}

// CampaignHandler serves campaign REST endpoints.
type CampaignHandler struct {
	svc campaignService
	log *slog.Logger
}

// NewCampaignHandler creates a CampaignHandler.
func NewCampaignHandler(svc campaignService, logger *slog.Logger) *CampaignHandler {
	return &CampaignHandler{svc: svc, log: logger.With("handler", "campaign")}
}

type createCampaignRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	GoalAmount    string     `json:"goalAmount"`
	EndDate       time.Time  `json:"endDate"`
	CurrentStep   int        `json:"currentStep"`
	BeneficiaryID *uuid.UUID `json:"beneficiaryId,omitempty"`
	CategoryID    *uuid.UUID `json:"categoryId,omitempty"`
	CoverImageURL *string    `json:"coverImageUrl,omitempty"`
}

type updateCampaignRequest struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	GoalAmount    *string    `json:"goalAmount,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	CurrentStep   *int       `json:"currentStep,omitempty"`
	CategoryID    *uuid.UUID `json:"categoryId,omitempty"`
	CoverImageURL *string    `json:"coverImageUrl,omitempty"`
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

type campaignResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	GoalAmount      string     `json:"goalAmount"`
	CurrentAmount   string     `json:"currentAmount"`
	ProgressPercent string     `json:"progressPercent"`
	Remaining       string     `json:"remaining"`
	Status          string     `json:"status"`
	EndDate         time.Time  `json:"endDate"`
	CurrentStep     int        `json:"currentStep"`
	CreatorID       string     `json:"creatorId"`
	BeneficiaryID   string     `json:"beneficiaryId"`
	CategoryID      *uuid.UUID `json:"categoryId,omitempty"`
	CoverImageURL   *string    `json:"coverImageUrl,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func toCampaignResponse(c *domain.Campaign) campaignResponse {
	return campaignResponse{
		ID:              c.ID.String(),
		Title:           c.Title,
		Description:     c.Description,
		GoalAmount:      c.GoalAmount.String(),
		CurrentAmount:   c.CurrentAmount.String(),
		ProgressPercent: c.ProgressPercent().String(),
		Remaining:       c.Remaining().String(),
		Status:          c.Status.String(),
		EndDate:         c.EndDate,
		CurrentStep:     c.CurrentStep,
		CreatorID:       c.CreatorID.String(),
		BeneficiaryID:   c.BeneficiaryID.String(),
		CategoryID:      c.CategoryID,
		CoverImageURL:   c.CoverImageURL,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// Create handles POST /v1/campaigns.
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	goal, err := decimal.NewFromString(req.GoalAmount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goalAmount")
		return
	}

	result, err := h.svc.Create(r.Context(), campaign.CreateInput{
		Title:         req.Title,
		Description:   req.Description,
		GoalAmount:    goal,
		EndDate:       req.EndDate,
		CurrentStep:   req.CurrentStep,
		BeneficiaryID: req.BeneficiaryID,
		CategoryID:    req.CategoryID,
		CoverImageURL: req.CoverImageURL,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCampaignResponse(result))
}

// Update handles PATCH /v1/campaigns/{id}.
func (h *CampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req updateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := campaign.UpdateInput{
		CampaignID:    id,
		Title:         req.Title,
		Description:   req.Description,
		EndDate:       req.EndDate,
		CurrentStep:   req.CurrentStep,
		CategoryID:    req.CategoryID,
		CoverImageURL: req.CoverImageURL,
	}
	if req.GoalAmount != nil {
		goal, err := decimal.NewFromString(*req.GoalAmount)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid goalAmount")
			return
		}
		input.GoalAmount = &goal
	}

	result, err := h.svc.Update(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCampaignResponse(result))
}

// Submit handles POST /v1/campaigns/{id}/submit.
func (h *CampaignHandler) Submit(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(ctx context.Context, id uuid.UUID, _ string) (*domain.Campaign, error) {
		return h.svc.Submit(ctx, id)
	})
}

// Approve handles POST /v1/campaigns/{id}/approve. Admin only.
func (h *CampaignHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, func(ctx context.Context, id uuid.UUID, _ string) (*domain.Campaign, error) {
		return h.svc.Approve(ctx, id)
	})
}

// Reject handles POST /v1/campaigns/{id}/reject. Admin only.
func (h *CampaignHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, func(ctx context.Context, id uuid.UUID, reason string) (*domain.Campaign, error) {
		return h.svc.Reject(ctx, id, reason)
	})
}

// Suspend handles POST /v1/campaigns/{id}/suspend. Admin only.
func (h *CampaignHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, func(ctx context.Context, id uuid.UUID, reason string) (*domain.Campaign, error) {
		return h.svc.Suspend(ctx, id, reason)
	})
}

// Reactivate handles POST /v1/campaigns/{id}/reactivate. Admin only.
func (h *CampaignHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, func(ctx context.Context, id uuid.UUID, _ string) (*domain.Campaign, error) {
		return h.svc.Reactivate(ctx, id)
	})
}

// moderate rejects non-admin callers before touching the body or the service.
func (h *CampaignHandler) moderate(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id uuid.UUID, reason string) (*domain.Campaign, error)) {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		h.handleError(w, r, err)
		return
	}
	h.transition(w, r, op)
}

// transition handles the shared shape of the status-change endpoints: an
// optional JSON body carrying a reason, then one service call.
func (h *CampaignHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id uuid.UUID, reason string) (*domain.Campaign, error)) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req reasonRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	result, err := op(r.Context(), id, req.Reason)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCampaignResponse(result))
}

// Get handles GET /v1/campaigns/{id}.
func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCampaignResponse(result))
}

// List handles GET /v1/campaigns?status=ACTIVE&creatorId=...&limit=50&offset=0.
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := campaign.ListInput{
		SortBy:    q.Get("sortBy"),
		SortOrder: strings.ToUpper(q.Get("sortOrder")),
		Limit:     queryInt(q.Get("limit")),
		Offset:    queryInt(q.Get("offset")),
	}
	for _, s := range q["status"] {
		input.Statuses = append(input.Statuses, domain.CampaignStatus(strings.ToUpper(s)))
	}
	if v := q.Get("creatorId"); v != "" {
		creatorID, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid creatorId")
			return
		}
		input.CreatorID = &creatorID
	}

	campaigns, err := h.svc.List(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := make([]campaignResponse, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, toCampaignResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CampaignHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if status, resp, ok := domainStatus(err); ok {
		writeJSON(w, status, resp)
		return
	}
	h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(v string) int {
	n, _ := strconv.Atoi(v)
	return n
}
