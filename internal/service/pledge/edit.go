package pledge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fundmate/fundmate-backend/internal/domain"
	"github.com/fundmate/fundmate-backend/pkg/ctxutil"
)

// Edit changes a PENDING pledge's amount, message, or anonymity. Only the
// owning contributor may edit. An amount change recomputes the campaign
// total.
func (s *Service) Edit(ctx context.Context, input EditInput) (*domain.Pledge, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.cfg); err != nil {
		return nil, err
	}

	pledge, err := s.pledges.GetByID(ctx, input.PledgeID)
	if err != nil {
		return nil, fmt.Errorf("get pledge: %w", err)
	}
	if !pledge.IsOwnedBy(userID) {
		return nil, domain.ErrNotPledgeOwner
	}
	if pledge.Status != domain.PledgeStatusPending {
		return nil, domain.ErrPledgeNotEditable
	}

	amountChanged := false
	if input.Amount != nil && !input.Amount.Equal(pledge.Amount) {
		if !input.Amount.IsPositive() {
			return nil, domain.ErrInvalidAmount
		}
		pledge.Amount = *input.Amount
		amountChanged = true
	}
	if input.Message != nil {
		pledge.Message = trimOrNil(input.Message)
	}
	if input.IsAnonymous != nil {
		pledge.IsAnonymous = *input.IsAnonymous
	}
	pledge.UpdatedAt = time.Now().UTC()

	var updated *domain.Pledge
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.pledges.Update(ctx, pledge)
		if err != nil {
			return fmt.Errorf("update pledge: %w", err)
		}
		if amountChanged {
			if err := s.recompute(ctx, updated.CampaignID); err != nil {
				return fmt.Errorf("recompute after edit: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "pledge edited",
		slog.String("pledge_id", updated.ID.String()),
		slog.Bool("amount_changed", amountChanged),
	)

	return updated, nil
}
