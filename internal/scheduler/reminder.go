package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/fundmate/fundmate-backend/internal/domain"
	"github.com/fundmate/fundmate-backend/internal/notify"
)

// Reminder thresholds in days before the deadline. Creators hear about all
// of them; contributors with unpaid pledges only about the last two.
var (
	creatorReminderDays     = []int{7, 3, 1}
	contributorReminderDays = []int{3, 1}
)

// SweepReminders emits deadline reminders for ACTIVE campaigns. It is a
// pure read + notify pass: no campaign or pledge state changes. A dedupe
// marker per (campaign, daysRemaining) keeps re-runs within the same day
// from re-sending. Paging is keyset on (end_date, id) so campaigns created
// or settled mid-sweep cannot shift rows across page boundaries.
func (s *Scheduler) SweepReminders(ctx context.Context) error {
	now := s.clock.Now()

	var cursor *domain.CampaignCursor
	for {
		batch, err := s.campaigns.List(ctx, domain.CampaignFilter{
			Statuses:  []domain.CampaignStatus{domain.CampaignStatusActive},
			EndAfter:  &now,
			After:     cursor,
			SortBy:    "end_date",
			SortOrder: "ASC",
			Limit:     s.cfg.SweepBatchSize,
		})
		if err != nil {
			return fmt.Errorf("list active campaigns: %w", err)
		}

		for _, c := range batch {
			if err := s.remindCampaign(ctx, c, now); err != nil {
				// Per-campaign isolation: log and move on.
				s.log.ErrorContext(ctx, "reminder failed",
					slog.String("campaign_id", c.ID.String()),
					slog.String("error", err.Error()),
				)
			}
		}

		if len(batch) < s.cfg.SweepBatchSize {
			return nil
		}
		last := batch[len(batch)-1]
		cursor = &domain.CampaignCursor{EndDate: last.EndDate, ID: last.ID}
	}
}

// remindCampaign sends the reminders one campaign is due at the given
// instant. Recipients are gathered before the marker is claimed, so a
// failed contributor listing leaves the marker unwritten and the next tick
// retries the whole reminder.
func (s *Scheduler) remindCampaign(ctx context.Context, c *domain.Campaign, now time.Time) error {
	days := daysRemaining(now, c.EndDate, s.loc)
	if !slices.Contains(creatorReminderDays, days) {
		return nil
	}

	sent, err := s.reminders.WasReminderSent(ctx, c.ID, days)
	if err != nil {
		return fmt.Errorf("check reminder marker: %w", err)
	}
	if sent {
		return nil
	}

	var contributors []uuid.UUID
	if slices.Contains(contributorReminderDays, days) {
		contributors, err = s.pendingContributors(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("list pending contributors: %w", err)
		}
	}

	// The marker insert is the authoritative claim between racing sweeps.
	first, err := s.reminders.MarkReminderSent(ctx, c.ID, days)
	if err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}
	if !first {
		return nil
	}

	notify.EmitBestEffort(ctx, s.emitter, s.log, notify.Event{
		RecipientID:     c.CreatorID,
		Category:        domain.NotificationCategoryCampaign,
		Title:           fmt.Sprintf("%d day(s) left on your campaign", days),
		Message:         fmt.Sprintf("%q has collected %s of its %s goal (%s%%), %s still needed", c.Title, c.CurrentAmount, c.GoalAmount, c.ProgressPercent(), c.Remaining()),
		ActionReference: "campaign:" + c.ID.String(),
		Metadata: map[string]string{
			"days_remaining":   fmt.Sprintf("%d", days),
			"current_amount":   c.CurrentAmount.String(),
			"goal_amount":      c.GoalAmount.String(),
			"progress_percent": c.ProgressPercent().String(),
			"remaining":        c.Remaining().String(),
		},
	})

	for _, contributor := range contributors {
		notify.EmitBestEffort(ctx, s.emitter, s.log, notify.Event{
			RecipientID:     contributor,
			Category:        domain.NotificationCategoryPledge,
			Title:           fmt.Sprintf("%d day(s) left to honor your pledge", days),
			Message:         fmt.Sprintf("%q ends soon and your pledge is still pending", c.Title),
			ActionReference: "campaign:" + c.ID.String(),
			Metadata: map[string]string{
				"days_remaining": fmt.Sprintf("%d", days),
				"campaign_id":    c.ID.String(),
			},
		})
	}

	return nil
}

// daysRemaining computes whole calendar days between now and the deadline:
// both instants are normalized to midnight in the reference timezone, the
// difference is divided by 24h rounding up, and negatives clamp to 0.
// At exactly midnight of the deadline day the result is 0.
func daysRemaining(now, endDate time.Time, loc *time.Location) int {
	nowMid := midnight(now.In(loc))
	endMid := midnight(endDate.In(loc))

	diff := endMid.Sub(nowMid)
	if diff <= 0 {
		return 0
	}
	// DST shifts make some days 23h or 25h; the ceil absorbs both.
	return int(math.Ceil(diff.Hours() / 24))
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
