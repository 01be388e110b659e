package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fundmate/fundmate-backend/internal/domain"
	"github.com/fundmate/fundmate-backend/internal/notify"
)

// SweepExpired settles every ACTIVE campaign whose deadline has passed:
// SUCCESS when the collected total reached the goal, CLOSED otherwise.
// The settle itself emits the creator event; this sweep additionally
// prompts every contributor who still holds a PENDING pledge.
//
// Campaigns already outside ACTIVE are skipped, so running the sweep twice
// over the same set mutates nothing and emits nothing the second time.
func (s *Scheduler) SweepExpired(ctx context.Context) error {
	now := s.clock.Now()

	for {
		// No offset paging: settled campaigns leave ACTIVE, so the next
		// iteration's listing starts fresh.
		batch, err := s.campaigns.List(ctx, domain.CampaignFilter{
			Statuses:  []domain.CampaignStatus{domain.CampaignStatusActive},
			EndBefore: &now,
			SortBy:    "end_date",
			SortOrder: "ASC",
			Limit:     s.cfg.SweepBatchSize,
		})
		if err != nil {
			return fmt.Errorf("list expired campaigns: %w", err)
		}
		if len(batch) == 0 {
			return nil
		}

		settledAny := false
		for _, c := range batch {
			settled, err := s.expireCampaign(ctx, c)
			if err != nil {
				s.log.ErrorContext(ctx, "settlement failed",
					slog.String("campaign_id", c.ID.String()),
					slog.String("error", err.Error()),
				)
				continue
			}
			settledAny = settledAny || settled
		}

		if len(batch) < s.cfg.SweepBatchSize {
			return nil
		}
		// A full batch where nothing settled would otherwise loop forever
		// on the same campaigns.
		if !settledAny {
			return nil
		}
	}
}

func (s *Scheduler) expireCampaign(ctx context.Context, c *domain.Campaign) (bool, error) {
	settled, didSettle, err := s.settler.Settle(ctx, c.ID)
	if err != nil {
		return false, fmt.Errorf("settle: %w", err)
	}
	if !didSettle {
		return false, nil
	}

	s.log.InfoContext(ctx, "campaign expired",
		slog.String("campaign_id", settled.ID.String()),
		slog.String("outcome", settled.Status.String()),
	)

	contributors, err := s.pendingContributors(ctx, settled.ID)
	if err != nil {
		// The transition is durable; the prompts are best-effort.
		s.log.WarnContext(ctx, "list pending contributors failed",
			slog.String("campaign_id", settled.ID.String()),
			slog.String("error", err.Error()),
		)
		return true, nil
	}

	title := "Campaign ended: please acknowledge your pledge"
	message := fmt.Sprintf("%q has ended; your pledge is still pending", settled.Title)
	if settled.Status == domain.CampaignStatusSuccess {
		title = "Campaign succeeded: time to honor your pledge"
		message = fmt.Sprintf("%q reached its goal; please honor your pending pledge", settled.Title)
	}

	for _, contributor := range contributors {
		notify.EmitBestEffort(ctx, s.emitter, s.log, notify.Event{
			RecipientID:     contributor,
			Category:        domain.NotificationCategoryPledge,
			Title:           title,
			Message:         message,
			ActionReference: "campaign:" + settled.ID.String(),
			Metadata: map[string]string{
				"campaign_id": settled.ID.String(),
				"outcome":     settled.Status.String(),
			},
		})
	}

	return true, nil
}
