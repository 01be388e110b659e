package rest

import "net/http"

// Handlers bundles the REST handlers the router mounts.
type Handlers struct {
	Health        *HealthHandler
	Campaigns     *CampaignHandler
	Pledges       *PledgeHandler
	Notifications *NotificationHandler
}

// NewRouter builds the HTTP route table. Authentication and the rest of the
// middleware chain are applied by the caller around the returned mux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	mux.HandleFunc("POST /v1/campaigns", h.Campaigns.Create)
	mux.HandleFunc("GET /v1/campaigns", h.Campaigns.List)
	mux.HandleFunc("GET /v1/campaigns/{id}", h.Campaigns.Get)
	mux.HandleFunc("PATCH /v1/campaigns/{id}", h.Campaigns.Update)
	mux.HandleFunc("POST /v1/campaigns/{id}/submit", h.Campaigns.Submit)
	mux.HandleFunc("POST /v1/campaigns/{id}/approve", h.Campaigns.Approve)
	mux.HandleFunc("POST /v1/campaigns/{id}/reject", h.Campaigns.Reject)
	mux.HandleFunc("POST /v1/campaigns/{id}/suspend", h.Campaigns.Suspend)
	mux.HandleFunc("POST /v1/campaigns/{id}/reactivate", h.Campaigns.Reactivate)
	mux.HandleFunc("GET /v1/campaigns/{id}/pledges", h.Pledges.ListByCampaign)

	mux.HandleFunc("POST /v1/pledges", h.Pledges.Create)
	mux.HandleFunc("GET /v1/pledges", h.Pledges.ListMine)
	mux.HandleFunc("GET /v1/pledges/{id}", h.Pledges.Get)
	mux.HandleFunc("PATCH /v1/pledges/{id}", h.Pledges.Edit)
	mux.HandleFunc("POST /v1/pledges/{id}/status", h.Pledges.SetStatus)
	mux.HandleFunc("DELETE /v1/pledges/{id}", h.Pledges.Delete)

	mux.HandleFunc("GET /v1/notifications", h.Notifications.List)
	mux.HandleFunc("POST /v1/notifications/{id}/read", h.Notifications.MarkRead)

	return mux
}
