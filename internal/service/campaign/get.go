package campaign

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fundmate/fundmate-backend/internal/domain"
)

// Get returns a campaign by ID.
func (s *Service) Get(ctx context.Context, campaignID uuid.UUID) (*domain.Campaign, error) {
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return campaign, nil
}

// List returns campaigns matching the input.
func (s *Service) List(ctx context.Context, input ListInput) ([]*domain.Campaign, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	campaigns, err := s.campaigns.List(ctx, domain.CampaignFilter{
		Statuses:  input.Statuses,
		CreatorID: input.CreatorID,
		SortBy:    input.SortBy,
		SortOrder: input.SortOrder,
		Limit:     input.Limit,
		Offset:    input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}

	return campaigns, nil
}
