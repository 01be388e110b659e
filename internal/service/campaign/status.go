package campaign

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fundmate/fundmate-backend/internal/domain"
	"github.com/fundmate/fundmate-backend/internal/notify"
)

// changeStatus applies one legal transition via compare-and-set and emits
// the status event to the campaign creator. The emit happens after the
// write commits and never fails the transition.
func (s *Service) changeStatus(ctx context.Context, campaign *domain.Campaign, to domain.CampaignStatus, by actor, reason string) (*domain.Campaign, error) {
	from := campaign.Status

	if !canTransition(from, to, by) {
		return nil, fmt.Errorf("campaign %s: %s -> %s: %w", campaign.ID, from, to, domain.ErrInvalidTransition)
	}

	ok, err := s.campaigns.SetStatus(ctx, campaign.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("set campaign status: %w", err)
	}
	if !ok {
		// A concurrent actor moved the campaign first.
		return nil, fmt.Errorf("campaign %s: %s -> %s: %w", campaign.ID, from, to, domain.ErrInvalidTransition)
	}
	campaign.Status = to

	s.log.InfoContext(ctx, "campaign status changed",
		slog.String("campaign_id", campaign.ID.String()),
		slog.String("old_status", from.String()),
		slog.String("new_status", to.String()),
		slog.String("actor", by.String()),
	)

	s.emitStatusEvent(ctx, campaign, from, to, reason)

	return campaign, nil
}

// emitStatusEvent notifies the creator about a committed status change.
func (s *Service) emitStatusEvent(ctx context.Context, campaign *domain.Campaign, from, to domain.CampaignStatus, reason string) {
	metadata := map[string]string{
		"old_status": from.String(),
		"new_status": to.String(),
	}
	if reason != "" {
		metadata["reason"] = reason
	}

	title, message := statusEventText(campaign, to)

	notify.EmitBestEffort(ctx, s.emitter, s.log, notify.Event{
		RecipientID:     campaign.CreatorID,
		Category:        domain.NotificationCategoryCampaign,
		Title:           title,
		Message:         message,
		ActionReference: "campaign:" + campaign.ID.String(),
		Metadata:        metadata,
	})
}

func statusEventText(campaign *domain.Campaign, to domain.CampaignStatus) (title, message string) {
	switch to {
	case domain.CampaignStatusPending:
		return "Campaign submitted", fmt.Sprintf("%q is awaiting review", campaign.Title)
	case domain.CampaignStatusActive:
		return "Campaign is live", fmt.Sprintf("%q is now accepting pledges", campaign.Title)
	case domain.CampaignStatusRejected:
		return "Campaign rejected", fmt.Sprintf("%q was not approved", campaign.Title)
	case domain.CampaignStatusSuspended:
		return "Campaign suspended", fmt.Sprintf("%q was suspended and is no longer accepting pledges", campaign.Title)
	case domain.CampaignStatusSuccess:
		return "Campaign reached its goal!", fmt.Sprintf("%q collected %s of its %s goal", campaign.Title, campaign.CurrentAmount, campaign.GoalAmount)
	case domain.CampaignStatusClosed:
		return "Campaign has ended", fmt.Sprintf("%q ended with %s of its %s goal", campaign.Title, campaign.CurrentAmount, campaign.GoalAmount)
	}
	return "Campaign updated", campaign.Title
}
