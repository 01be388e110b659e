package campaign

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fundmate/fundmate-backend/internal/domain"
	"github.com/fundmate/fundmate-backend/pkg/ctxutil"
)

// Create creates a new campaign in DRAFT status. The caller becomes the
// creator; the beneficiary defaults to the creator when not given.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Campaign, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	if input.CurrentStep == 0 {
		input.CurrentStep = domain.CampaignMinStep
	}
	if err := input.Validate(s.cfg, now); err != nil {
		return nil, err
	}

	beneficiary := userID
	if input.BeneficiaryID != nil {
		beneficiary = *input.BeneficiaryID
	}

	campaign, err := s.campaigns.Create(ctx, &domain.Campaign{
		ID:            uuid.New(),
		Title:         strings.TrimSpace(input.Title),
		Description:   input.Description,
		GoalAmount:    input.GoalAmount,
		CurrentAmount: decimal.Zero,
		Status:        domain.CampaignStatusDraft,
		EndDate:       input.EndDate,
		CurrentStep:   input.CurrentStep,
		CreatorID:     userID,
		BeneficiaryID: beneficiary,
		CategoryID:    input.CategoryID,
		CoverImageURL: input.CoverImageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}

	s.log.InfoContext(ctx, "campaign created",
		slog.String("campaign_id", campaign.ID.String()),
		slog.String("creator_id", userID.String()),
		slog.String("goal_amount", campaign.GoalAmount.String()),
	)

	return campaign, nil
}
