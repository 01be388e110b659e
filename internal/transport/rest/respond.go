package rest

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/fundmate/fundmate-backend/internal/domain"
	"github.com/fundmate/fundmate-backend/pkg/ctxutil"
)

// viewerID returns the authenticated user ID, or uuid.Nil for anonymous
// requests.
func viewerID(r *http.Request) uuid.UUID {
	id, _ := ctxutil.UserIDFromCtx(r.Context())
	return id
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// errorResponse carries the stable error code alongside the message so
// clients can branch on the taxonomy member rather than the text.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// domainStatus maps a domain error to its HTTP status and stable code.
// Terminal-state and authorization failures both come out 4xx but keep
// distinct codes.
func domainStatus(err error) (int, errorResponse, bool) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, errorResponse{Code: "VALIDATION", Message: err.Error()}, true
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, errorResponse{Code: "INVALID_AMOUNT", Message: "amount must be positive"}, true
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, errorResponse{Code: "UNAUTHORIZED", Message: "unauthorized"}, true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Code: "FORBIDDEN", Message: "forbidden"}, true
	case errors.Is(err, domain.ErrNotAuthorizedOrFinal):
		return http.StatusForbidden, errorResponse{Code: "NOT_AUTHORIZED_OR_FINAL", Message: "not authorized or campaign is final"}, true
	case errors.Is(err, domain.ErrNotPledgeOwner):
		return http.StatusForbidden, errorResponse{Code: "NOT_PLEDGE_OWNER", Message: "not the pledge owner"}, true
	case errors.Is(err, domain.ErrSelfPledge):
		return http.StatusForbidden, errorResponse{Code: "SELF_PLEDGE_FORBIDDEN", Message: "cannot pledge to own campaign"}, true
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Code: "NOT_FOUND", Message: "not found"}, true
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, errorResponse{Code: "INVALID_TRANSITION", Message: "invalid status transition"}, true
	case errors.Is(err, domain.ErrCampaignNotAcceptingPledges):
		return http.StatusConflict, errorResponse{Code: "CAMPAIGN_NOT_ACCEPTING_PLEDGES", Message: "campaign is not accepting pledges"}, true
	case errors.Is(err, domain.ErrPledgeNotEditable):
		return http.StatusConflict, errorResponse{Code: "PLEDGE_NOT_EDITABLE", Message: "pledge is not editable"}, true
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict, errorResponse{Code: "ALREADY_EXISTS", Message: "already exists"}, true
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, errorResponse{Code: "CONFLICT", Message: "conflict"}, true
	}
	return 0, errorResponse{}, false
}
