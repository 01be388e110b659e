package campaign

import "github.com/fundmate/fundmate-backend/internal/domain"

// actor identifies who is requesting a status change. The scheduler is a
// distinct actor so settlement outcomes can never be reached through the
// user-facing operations.
type actor int

const (
	actorCreator actor = iota
	actorAdmin
	actorScheduler
)

func (a actor) String() string {
	switch a {
	case actorCreator:
		return "creator"
	case actorAdmin:
		return "admin"
	case actorScheduler:
		return "scheduler"
	}
	return "unknown"
}

type transition struct {
	from domain.CampaignStatus
	to   domain.CampaignStatus
}

// transitionTable is the complete set of legal campaign status changes and
// the actors allowed to request each one. Anything absent from the table is
// an invalid transition, regardless of actor.
var transitionTable = map[transition][]actor{
	{domain.CampaignStatusDraft, domain.CampaignStatusPending}:     {actorCreator},
	{domain.CampaignStatusPending, domain.CampaignStatusActive}:    {actorAdmin},
	{domain.CampaignStatusPending, domain.CampaignStatusRejected}:  {actorAdmin},
	{domain.CampaignStatusPending, domain.CampaignStatusSuspended}: {actorAdmin},
	{domain.CampaignStatusActive, domain.CampaignStatusSuspended}:  {actorAdmin},
	{domain.CampaignStatusSuspended, domain.CampaignStatusActive}:  {actorAdmin},
	{domain.CampaignStatusActive, domain.CampaignStatusSuccess}:    {actorScheduler},
	{domain.CampaignStatusActive, domain.CampaignStatusClosed}:     {actorScheduler},
}

// canTransition reports whether the given actor may move a campaign from one
// status to another.
func canTransition(from, to domain.CampaignStatus, by actor) bool {
	actors, ok := transitionTable[transition{from: from, to: to}]
	if !ok {
		return false
	}
	for _, a := range actors {
		if a == by {
			return true
		}
	}
	return false
}
