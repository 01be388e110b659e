package campaign

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fundmate/fundmate-backend/internal/domain"
	"github.com/fundmate/fundmate-backend/pkg/ctxutil"
)

// Update edits a campaign's mutable fields. The creator may edit while the
// campaign is in DRAFT or PENDING; an administrator may edit any non-final
// campaign for moderation corrections. Once the campaign leaves DRAFT the
// end date is frozen for the creator; only an administrator may still move
// it while the campaign is non-final.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Campaign, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	if err := input.Validate(s.cfg, now); err != nil {
		return nil, err
	}

	campaign, err := s.campaigns.GetByID(ctx, input.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}

	if campaign.Status.IsFinal() {
		return nil, domain.ErrNotAuthorizedOrFinal
	}

	isAdmin := ctxutil.IsAdminCtx(ctx)
	isCreator := campaign.CreatorID == userID
	switch {
	case isAdmin:
		// moderation corrections allowed in any non-final status
	case isCreator:
		if campaign.Status != domain.CampaignStatusDraft && campaign.Status != domain.CampaignStatusPending {
			return nil, domain.ErrNotAuthorizedOrFinal
		}
	default:
		return nil, domain.ErrNotAuthorizedOrFinal
	}

	if input.EndDate != nil && !input.EndDate.Equal(campaign.EndDate) {
		if campaign.Status != domain.CampaignStatusDraft && !isAdmin {
			return nil, domain.NewValidationError("end_date", "immutable after submission")
		}
		campaign.EndDate = *input.EndDate
	}

	if input.Title != nil {
		campaign.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		campaign.Description = *input.Description
	}
	if input.GoalAmount != nil {
		campaign.GoalAmount = *input.GoalAmount
	}
	if input.CurrentStep != nil {
		campaign.CurrentStep = *input.CurrentStep
	}
	if input.CategoryID != nil {
		campaign.CategoryID = input.CategoryID
	}
	if input.CoverImageURL != nil {
		campaign.CoverImageURL = input.CoverImageURL
	}
	campaign.UpdatedAt = now

	updated, err := s.campaigns.Update(ctx, campaign)
	if err != nil {
		return nil, fmt.Errorf("update campaign: %w", err)
	}

	s.log.InfoContext(ctx, "campaign updated",
		slog.String("campaign_id", updated.ID.String()),
		slog.String("actor_id", userID.String()),
	)

	return updated, nil
}
