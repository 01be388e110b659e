// Package aggregation re-derives a campaign's collected total from its
// pledges. It is deliberately a full aggregate scan rather than an
// incremental counter: two concurrent writes that each bump a cached counter
// can interleave and under- or over-count, whereas re-deriving the sum from
// the source rows after each write is self-correcting regardless of write
// order. Racing recomputes may overwrite each other; last-writer-wins is
// fine because re-running the recompute later repairs any transient
// staleness.
package aggregation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fundmate/fundmate-backend/internal/domain"
)

// countedStatuses are the pledge statuses that contribute to the public
// total: a pledge counts from the moment it is made, and only cancellation
// removes it.
var countedStatuses = []domain.PledgeStatus{
	domain.PledgeStatusPending,
	domain.PledgeStatusPaid,
}

type pledgeSummer interface {
	SumAmounts(ctx context.Context, campaignID uuid.UUID, statuses []domain.PledgeStatus) (decimal.Decimal, error)
}

type campaignAmountWriter interface {
	SetCurrentAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
}

// Engine recomputes campaign totals.
type Engine struct {
	pledges   pledgeSummer
	campaigns campaignAmountWriter
	log       *slog.Logger
}

// NewEngine creates an aggregation engine.
func NewEngine(log *slog.Logger, pledges pledgeSummer, campaigns campaignAmountWriter) *Engine {
	return &Engine{
		pledges:   pledges,
		campaigns: campaigns,
		log:       log.With("service", "aggregation"),
	}
}

// Recompute re-derives the campaign's currentAmount from its PENDING and
// PAID pledges and overwrites the stored value. It is called synchronously
// after every pledge-affecting write.
func (e *Engine) Recompute(ctx context.Context, campaignID uuid.UUID) (decimal.Decimal, error) {
	total, err := e.pledges.SumAmounts(ctx, campaignID, countedStatuses)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum pledges: %w", err)
	}

	if err := e.campaigns.SetCurrentAmount(ctx, campaignID, total); err != nil {
		return decimal.Zero, fmt.Errorf("set current amount: %w", err)
	}

	e.log.DebugContext(ctx, "campaign total recomputed",
		slog.String("campaign_id", campaignID.String()),
		slog.String("current_amount", total.String()),
	)

	return total, nil
}
