package pledge

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fundmate/fundmate-backend/internal/domain"
	"github.com/fundmate/fundmate-backend/pkg/ctxutil"
)

// Delete removes a PENDING pledge. Only the owning contributor may delete,
// and the campaign total is recomputed afterwards.
func (s *Service) Delete(ctx context.Context, pledgeID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	pledge, err := s.pledges.GetByID(ctx, pledgeID)
	if err != nil {
		return fmt.Errorf("get pledge: %w", err)
	}
	if !pledge.IsOwnedBy(userID) {
		return domain.ErrNotPledgeOwner
	}
	if pledge.Status != domain.PledgeStatusPending {
		return domain.ErrPledgeNotEditable
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.pledges.Delete(ctx, pledge.ID); err != nil {
			return fmt.Errorf("delete pledge: %w", err)
		}
		if err := s.recompute(ctx, pledge.CampaignID); err != nil {
			return fmt.Errorf("recompute after delete: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "pledge deleted",
		slog.String("pledge_id", pledge.ID.String()),
		slog.String("campaign_id", pledge.CampaignID.String()),
	)

	return nil
}
