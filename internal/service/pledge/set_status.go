package pledge

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fundmate/fundmate-backend/internal/domain"
	"github.com/fundmate/fundmate-backend/pkg/ctxutil"
)

// SetStatus moves a pledge out of PENDING. Only the owning contributor may
// do this, and only PENDING -> PAID and PENDING -> CANCELLED exist; PAID and
// CANCELLED are terminal. The first transition into PAID stamps paidAt. The
// campaign total is recomputed after the write, and both parties are
// notified.
func (s *Service) SetStatus(ctx context.Context, pledgeID uuid.UUID, newStatus domain.PledgeStatus) (*domain.Pledge, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !newStatus.IsValid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("unknown status %q", newStatus))
	}

	pledge, err := s.pledges.GetByID(ctx, pledgeID)
	if err != nil {
		return nil, fmt.Errorf("get pledge: %w", err)
	}
	if !pledge.IsOwnedBy(userID) {
		return nil, domain.ErrNotPledgeOwner
	}

	if pledge.Status.IsTerminal() || newStatus == domain.PledgeStatusPending || newStatus == pledge.Status {
		return nil, fmt.Errorf("pledge %s: %s -> %s: %w", pledge.ID, pledge.Status, newStatus, domain.ErrInvalidTransition)
	}

	var updated *domain.Pledge
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var won bool
		var err error
		updated, won, err = s.pledges.SetStatus(ctx, pledge.ID, domain.PledgeStatusPending, newStatus)
		if err != nil {
			return fmt.Errorf("set pledge status: %w", err)
		}
		if !won {
			// A concurrent request moved the pledge first.
			return fmt.Errorf("pledge %s: %s -> %s: %w", pledge.ID, pledge.Status, newStatus, domain.ErrInvalidTransition)
		}
		if err := s.recompute(ctx, updated.CampaignID); err != nil {
			return fmt.Errorf("recompute after status change: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "pledge status changed",
		slog.String("pledge_id", updated.ID.String()),
		slog.String("new_status", newStatus.String()),
	)

	campaign, err := s.campaigns.GetByID(ctx, updated.CampaignID)
	if err != nil {
		// The transition is durable; skip notification rather than fail.
		s.log.WarnContext(ctx, "get campaign for pledge events failed",
			slog.String("campaign_id", updated.CampaignID.String()),
			slog.String("error", err.Error()),
		)
		return updated, nil
	}

	switch newStatus {
	case domain.PledgeStatusPaid:
		s.emitPledgePair(ctx, campaign, updated,
			"Pledge honored", fmt.Sprintf("A pledge of %s to %q was paid", updated.Amount, campaign.Title),
			"Pledge honored", fmt.Sprintf("You paid your pledge of %s to %q", updated.Amount, campaign.Title),
		)
	case domain.PledgeStatusCancelled:
		s.emitPledgePair(ctx, campaign, updated,
			"Pledge cancelled", fmt.Sprintf("A pledge of %s to %q was cancelled", updated.Amount, campaign.Title),
			"Pledge cancelled", fmt.Sprintf("You cancelled your pledge of %s to %q", updated.Amount, campaign.Title),
		)
	}

	return updated, nil
}
