// Package campaign implements the campaign lifecycle: draft creation,
// submission for moderation, administrator decisions, and time-driven
// settlement. Status legality is decided by a single transition table
// (transitions.go); every status change goes through a compare-and-set
// write so concurrent actors cannot double-apply a transition.
package campaign

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fundmate/fundmate-backend/internal/config"
	"github.com/fundmate/fundmate-backend/internal/domain"
	"github.com/fundmate/fundmate-backend/internal/notify"
)

type campaignRepo interface {
	Create(ctx context.Context, c *domain.Campaign) (*domain.Campaign, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	Update(ctx context.Context, c *domain.Campaign) (*domain.Campaign, error)
	SetStatus(ctx context.Context, id uuid.UUID, from, to domain.CampaignStatus) (bool, error)
	List(ctx context.Context, f domain.CampaignFilter) ([]*domain.Campaign, error)
}

// Service provides campaign lifecycle operations.
type Service struct {
	campaigns campaignRepo
	emitter   notify.Emitter
	cfg       config.CampaignConfig
	log       *slog.Logger
}

// NewService creates a new Campaign service.
func NewService(
	log *slog.Logger,
	cfg config.CampaignConfig,
	campaigns campaignRepo,
	emitter notify.Emitter,
) *Service {
	return &Service{
		campaigns: campaigns,
		emitter:   emitter,
		cfg:       cfg,
		log:       log.With("service", "campaign"),
	}
}
