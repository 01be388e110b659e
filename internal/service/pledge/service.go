// Package pledge implements the pledge lifecycle: creation against an
// ACTIVE campaign, owner-only edits and status changes, and deletion while
// PENDING. Every write that can change the campaign's collected total is
// followed by a synchronous aggregation recompute.
package pledge

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fundmate/fundmate-backend/internal/config"
	"github.com/fundmate/fundmate-backend/internal/domain"
	"github.com/fundmate/fundmate-backend/internal/notify"
)

type pledgeRepo interface {
	Create(ctx context.Context, p *domain.Pledge) (*domain.Pledge, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Pledge, error)
	Update(ctx context.Context, p *domain.Pledge) (*domain.Pledge, error)
	SetStatus(ctx context.Context, id uuid.UUID, from, to domain.PledgeStatus) (*domain.Pledge, bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByCampaign(ctx context.Context, campaignID uuid.UUID, statuses ...domain.PledgeStatus) ([]*domain.Pledge, error)
	ListByContributor(ctx context.Context, contributorID uuid.UUID) ([]*domain.Pledge, error)
}

type campaignReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
}

type aggregator interface {
	Recompute(ctx context.Context, campaignID uuid.UUID) (decimal.Decimal, error)
}

// txRunner executes a function within a database transaction. The pledge
// write and the total recompute commit together, so a crash between them
// cannot leave a stale campaign total behind.
type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides pledge lifecycle operations.
type Service struct {
	pledges   pledgeRepo
	campaigns campaignReader
	agg       aggregator
	tx        txRunner
	emitter   notify.Emitter
	cfg       config.CampaignConfig
	log       *slog.Logger
}

// NewService creates a new Pledge service.
func NewService(
	log *slog.Logger,
	cfg config.CampaignConfig,
	pledges pledgeRepo,
	campaigns campaignReader,
	agg aggregator,
	tx txRunner,
	emitter notify.Emitter,
) *Service {
	return &Service{
		pledges:   pledges,
		campaigns: campaigns,
		agg:       agg,
		tx:        tx,
		emitter:   emitter,
		cfg:       cfg,
		log:       log.With("service", "pledge"),
	}
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// recompute re-derives the campaign total after a pledge write. Recompute
// failures are returned to the caller so they can retry; the pledge write
// itself has already committed.
func (s *Service) recompute(ctx context.Context, campaignID uuid.UUID) error {
	_, err := s.agg.Recompute(ctx, campaignID)
	return err
}
