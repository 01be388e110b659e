package pledge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fundmate/fundmate-backend/internal/domain"
	"github.com/fundmate/fundmate-backend/internal/notify"
	"github.com/fundmate/fundmate-backend/pkg/ctxutil"
)

// Create makes a pledge against an ACTIVE campaign. The pledge starts in
// PENDING and counts toward the campaign total immediately; the campaign
// total is recomputed before returning.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Pledge, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.cfg); err != nil {
		return nil, err
	}
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	campaign, err := s.campaigns.GetByID(ctx, input.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	if campaign.Status != domain.CampaignStatusActive {
		return nil, domain.ErrCampaignNotAcceptingPledges
	}
	if campaign.CreatorID == userID {
		return nil, domain.ErrSelfPledge
	}

	now := time.Now().UTC()
	var pledge *domain.Pledge
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		pledge, err = s.pledges.Create(ctx, &domain.Pledge{
			ID:            uuid.New(),
			CampaignID:    campaign.ID,
			ContributorID: userID,
			Amount:        input.Amount,
			Status:        domain.PledgeStatusPending,
			Message:       trimOrNil(input.Message),
			IsAnonymous:   input.IsAnonymous,
			PromisedAt:    now,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			return fmt.Errorf("create pledge: %w", err)
		}
		if err := s.recompute(ctx, campaign.ID); err != nil {
			return fmt.Errorf("recompute after create: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "pledge created",
		slog.String("pledge_id", pledge.ID.String()),
		slog.String("campaign_id", campaign.ID.String()),
		slog.String("contributor_id", userID.String()),
		slog.String("amount", pledge.Amount.String()),
	)

	s.emitPledgePair(ctx, campaign, pledge,
		"New pledge received", fmt.Sprintf("%q received a pledge of %s", campaign.Title, pledge.Amount),
		"Pledge made", fmt.Sprintf("You pledged %s to %q", pledge.Amount, campaign.Title),
	)

	return pledge, nil
}

// emitPledgePair sends one event to the campaign creator and one to the
// contributor. Anonymity only affects display, so the creator event carries
// the amount but never the contributor reference when the pledge is
// anonymous.
func (s *Service) emitPledgePair(ctx context.Context, campaign *domain.Campaign, pledge *domain.Pledge, creatorTitle, creatorMsg, contributorTitle, contributorMsg string) {
	creatorMeta := map[string]string{
		"campaign_id": campaign.ID.String(),
		"amount":      pledge.Amount.String(),
		"status":      pledge.Status.String(),
	}
	if !pledge.IsAnonymous {
		creatorMeta["contributor_id"] = pledge.ContributorID.String()
	}

	notify.EmitBestEffort(ctx, s.emitter, s.log, notify.Event{
		RecipientID:     campaign.CreatorID,
		Category:        domain.NotificationCategoryPledge,
		Title:           creatorTitle,
		Message:         creatorMsg,
		ActionReference: "pledge:" + pledge.ID.String(),
		Metadata:        creatorMeta,
	})

	notify.EmitBestEffort(ctx, s.emitter, s.log, notify.Event{
		RecipientID:     pledge.ContributorID,
		Category:        domain.NotificationCategoryPledge,
		Title:           contributorTitle,
		Message:         contributorMsg,
		ActionReference: "pledge:" + pledge.ID.String(),
		Metadata: map[string]string{
			"campaign_id": campaign.ID.String(),
			"amount":      pledge.Amount.String(),
			"status":      pledge.Status.String(),
		},
	})
}
