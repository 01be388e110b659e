package campaign

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fundmate/fundmate-backend/internal/domain"
	"github.com/fundmate/fundmate-backend/pkg/ctxutil"
)

// Approve moves a PENDING campaign to ACTIVE. Administrator only.
func (s *Service) Approve(ctx context.Context, campaignID uuid.UUID) (*domain.Campaign, error) {
	return s.moderate(ctx, campaignID, domain.CampaignStatusActive, "")
}

// Reject moves a PENDING campaign to REJECTED with an optional reason.
// Administrator only. REJECTED is final.
func (s *Service) Reject(ctx context.Context, campaignID uuid.UUID, reason string) (*domain.Campaign, error) {
	return s.moderate(ctx, campaignID, domain.CampaignStatusRejected, strings.TrimSpace(reason))
}

// Suspend pauses an ACTIVE or PENDING campaign. Administrator only.
func (s *Service) Suspend(ctx context.Context, campaignID uuid.UUID, reason string) (*domain.Campaign, error) {
	return s.moderate(ctx, campaignID, domain.CampaignStatusSuspended, strings.TrimSpace(reason))
}

// Reactivate restores a SUSPENDED campaign to ACTIVE. Administrator only.
func (s *Service) Reactivate(ctx context.Context, campaignID uuid.UUID) (*domain.Campaign, error) {
	return s.moderate(ctx, campaignID, domain.CampaignStatusActive, "")
}

func (s *Service) moderate(ctx context.Context, campaignID uuid.UUID, to domain.CampaignStatus, reason string) (*domain.Campaign, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}

	return s.changeStatus(ctx, campaign, to, actorAdmin, reason)
}
