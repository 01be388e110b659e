package pledge

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fundmate/fundmate-backend/internal/domain"
	"github.com/fundmate/fundmate-backend/pkg/ctxutil"
)

// Get returns a pledge by ID.
func (s *Service) Get(ctx context.Context, pledgeID uuid.UUID) (*domain.Pledge, error) {
	pledge, err := s.pledges.GetByID(ctx, pledgeID)
	if err != nil {
		return nil, fmt.Errorf("get pledge: %w", err)
	}
	return pledge, nil
}

// ListByCampaign returns a campaign's pledges, optionally restricted to the
// given statuses.
func (s *Service) ListByCampaign(ctx context.Context, campaignID uuid.UUID, statuses ...domain.PledgeStatus) ([]*domain.Pledge, error) {
	pledges, err := s.pledges.ListByCampaign(ctx, campaignID, statuses...)
	if err != nil {
		return nil, fmt.Errorf("list pledges by campaign: %w", err)
	}
	return pledges, nil
}

// ListMine returns all pledges made by the calling contributor.
func (s *Service) ListMine(ctx context.Context) ([]*domain.Pledge, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	pledges, err := s.pledges.ListByContributor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list pledges by contributor: %w", err)
	}
	return pledges, nil
}
