// Package scheduler runs the two time-driven sweeps over ACTIVE campaigns:
// a daily reminder sweep and a frequent expiration sweep. Both run on an
// injected clock so tests can drive time, and both reuse the same lifecycle
// and aggregation code paths as the request handlers.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/fundmate/fundmate-backend/internal/config"
	"github.com/fundmate/fundmate-backend/internal/domain"
	"github.com/fundmate/fundmate-backend/internal/notify"
)

type campaignLister interface {
	List(ctx context.Context, f domain.CampaignFilter) ([]*domain.Campaign, error)
}

type settler interface {
	Settle(ctx context.Context, campaignID uuid.UUID) (*domain.Campaign, bool, error)
}

type pledgeLister interface {
	ListByCampaign(ctx context.Context, campaignID uuid.UUID, statuses ...domain.PledgeStatus) ([]*domain.Pledge, error)
}

// reminderMarker records that a reminder for (campaign, daysRemaining) went
// out. The insert is the dedupe: it reports false when the marker already
// exists, so a re-run of the sweep on the same day sends nothing twice.
// WasReminderSent reads the marker without claiming it.
type reminderMarker interface {
	WasReminderSent(ctx context.Context, campaignID uuid.UUID, daysRemaining int) (bool, error)
	MarkReminderSent(ctx context.Context, campaignID uuid.UUID, daysRemaining int) (bool, error)
}

// Scheduler drives the reminder and expiration sweeps.
type Scheduler struct {
	campaigns campaignLister
	pledges   pledgeLister
	settler   settler
	reminders reminderMarker
	emitter   notify.Emitter
	clock     clockwork.Clock
	loc       *time.Location
	cfg       config.SchedulerConfig
	log       *slog.Logger
}

// New creates a scheduler. The location is the reference timezone for
// calendar-day arithmetic in the reminder sweep.
func New(
	log *slog.Logger,
	cfg config.SchedulerConfig,
	clock clockwork.Clock,
	campaigns campaignLister,
	pledges pledgeLister,
	settler settler,
	reminders reminderMarker,
	emitter notify.Emitter,
) *Scheduler {
	return &Scheduler{
		campaigns: campaigns,
		pledges:   pledges,
		settler:   settler,
		reminders: reminders,
		emitter:   emitter,
		clock:     clock,
		loc:       cfg.Location(),
		cfg:       cfg,
		log:       log.With("service", "scheduler"),
	}
}

// Run blocks until the context is cancelled, ticking the two sweeps on
// their configured intervals. Sweep errors are logged and retried on the
// next tick, never immediately.
func (s *Scheduler) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		s.log.InfoContext(ctx, "scheduler disabled")
		return
	}

	s.log.InfoContext(ctx, "scheduler started",
		slog.Duration("reminder_interval", s.cfg.ReminderInterval),
		slog.Duration("expire_interval", s.cfg.ExpireInterval),
		slog.String("timezone", s.cfg.Timezone),
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.loop(ctx, s.cfg.ReminderInterval, "reminder", s.SweepReminders)
	}()
	go func() {
		defer wg.Done()
		s.loop(ctx, s.cfg.ExpireInterval, "expiration", s.SweepExpired)
	}()
	wg.Wait()

	s.log.InfoContext(ctx, "scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, interval time.Duration, name string, sweep func(context.Context) error) {
	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if err := sweep(ctx); err != nil {
				s.log.ErrorContext(ctx, "sweep failed",
					slog.String("sweep", name),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

// pendingContributors returns the distinct contributors holding a PENDING
// pledge on the campaign, in first-seen order.
func (s *Scheduler) pendingContributors(ctx context.Context, campaignID uuid.UUID) ([]uuid.UUID, error) {
	pledges, err := s.pledges.ListByCampaign(ctx, campaignID, domain.PledgeStatusPending)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(pledges))
	contributors := make([]uuid.UUID, 0, len(pledges))
	for _, p := range pledges {
		if _, ok := seen[p.ContributorID]; ok {
			continue
		}
		seen[p.ContributorID] = struct{}{}
		contributors = append(contributors, p.ContributorID)
	}
	return contributors, nil
}
