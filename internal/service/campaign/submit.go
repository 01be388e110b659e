package campaign

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fundmate/fundmate-backend/internal/domain"
	"github.com/fundmate/fundmate-backend/pkg/ctxutil"
)

// Submit moves the caller's DRAFT campaign into PENDING review.
func (s *Service) Submit(ctx context.Context, campaignID uuid.UUID) (*domain.Campaign, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	if campaign.CreatorID != userID {
		return nil, domain.ErrNotAuthorizedOrFinal
	}

	return s.changeStatus(ctx, campaign, domain.CampaignStatusPending, actorCreator, "")
}
