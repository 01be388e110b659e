package campaign

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fundmate/fundmate-backend/internal/domain"
)

// Settle finalizes an expired ACTIVE campaign: SUCCESS when the collected
// total reached the goal, CLOSED otherwise. It is the scheduler's primitive
// and takes no actor from the context.
//
// Settle is idempotent with respect to status: a campaign already outside
// ACTIVE, or one whose deadline has not yet passed, is returned unchanged
// with settled=false and no event is emitted. When two sweeps race, the
// compare-and-set lets exactly one of them win.
func (s *Service) Settle(ctx context.Context, campaignID uuid.UUID) (campaign *domain.Campaign, settled bool, err error) {
	campaign, err = s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, false, fmt.Errorf("get campaign: %w", err)
	}

	if campaign.Status != domain.CampaignStatusActive || !campaign.Expired(time.Now().UTC()) {
		return campaign, false, nil
	}

	outcome := domain.CampaignStatusClosed
	if campaign.GoalReached() {
		outcome = domain.CampaignStatusSuccess
	}

	ok, err := s.campaigns.SetStatus(ctx, campaign.ID, domain.CampaignStatusActive, outcome)
	if err != nil {
		return nil, false, fmt.Errorf("set campaign status: %w", err)
	}
	if !ok {
		// Lost the race against a concurrent sweep or an administrator.
		settledCampaign, err := s.campaigns.GetByID(ctx, campaign.ID)
		if err != nil {
			return nil, false, fmt.Errorf("get campaign after lost settle: %w", err)
		}
		return settledCampaign, false, nil
	}

	from := campaign.Status
	campaign.Status = outcome

	s.log.InfoContext(ctx, "campaign settled",
		slog.String("campaign_id", campaign.ID.String()),
		slog.String("outcome", outcome.String()),
		slog.String("current_amount", campaign.CurrentAmount.String()),
		slog.String("goal_amount", campaign.GoalAmount.String()),
	)

	s.emitStatusEvent(ctx, campaign, from, outcome, "")

	return campaign, true, nil
}
